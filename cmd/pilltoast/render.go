package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pilltoast/internal/color"
	"github.com/jmylchreest/pilltoast/internal/snapshot"
)

var renderOpts struct {
	out      string
	style    string
	location string
	width    int
	height   int
	backdrop string
	crop     bool
}

var renderCmd = &cobra.Command{
	Use:   "render MESSAGE...",
	Short: "Render a toast to PNG",
	Long: `Render a toast at its resting position to a PNG file.

The image is the size of the screen unless --crop is given, in which case
only the pill is written. The screen size defaults to the configured
fallback size.

Examples:
  pilltoast render --out saved.png "Saved"
  pilltoast render --style fail --crop --out fail.png "Upload failed"
  pilltoast render --width 1920 --height 1080 --backdrop "#202020" --out scene.png "Hello"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "",
		"Output PNG file")
	renderCmd.Flags().StringVarP(&renderOpts.style, "style", "s", "",
		"Style name (info, success, fail, warn or a configured style)")
	renderCmd.Flags().StringVarP(&renderOpts.location, "location", "l", "",
		"Screen edge (top, bottom)")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 0,
		"Screen width in pixels (default: display.screen_width)")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", 0,
		"Screen height in pixels (default: display.screen_height)")
	renderCmd.Flags().StringVar(&renderOpts.backdrop, "backdrop", "",
		"Backdrop colour as hex (default: transparent)")
	renderCmd.Flags().BoolVar(&renderOpts.crop, "crop", false,
		"Write only the pill")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	reg, err := loadStyles()
	if err != nil {
		return err
	}
	name := styleArg(renderOpts.style)
	st, ok := reg.Get(name)
	if !ok {
		return fmt.Errorf("unknown style %q", name)
	}
	loc, _, err := toastArgs(renderOpts.location, "")
	if err != nil {
		return err
	}

	opts := snapshot.Options{
		Width:    renderOpts.width,
		Height:   renderOpts.height,
		Location: loc,
		Crop:     renderOpts.crop,
	}
	if opts.Width <= 0 {
		opts.Width = cfg.Display.ScreenWidth
	}
	if opts.Height <= 0 {
		opts.Height = cfg.Display.ScreenHeight
	}
	if renderOpts.backdrop != "" {
		if opts.Backdrop, err = color.Parse(renderOpts.backdrop); err != nil {
			return fmt.Errorf("invalid backdrop: %w", err)
		}
	}

	r, err := snapshot.NewRenderer(logger)
	if err != nil {
		return err
	}
	img, err := r.Render(strings.Join(args, " "), st, opts)
	if err != nil {
		return err
	}
	if err := snapshot.SavePNG(renderOpts.out, img); err != nil {
		return err
	}

	logger.Debug("rendered toast", "path", renderOpts.out, "style", name,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
