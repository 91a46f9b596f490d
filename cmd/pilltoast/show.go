package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pilltoast/internal/dbus"
	"github.com/jmylchreest/pilltoast/internal/layout"
	"github.com/jmylchreest/pilltoast/internal/toast"
	"github.com/jmylchreest/pilltoast/internal/tui"
)

var showOpts struct {
	style    string
	location string
	duration string
	remote   bool
	dryRun   bool
}

var showCmd = &cobra.Command{
	Use:   "show MESSAGE...",
	Short: "Show a toast",
	Long: `Show a toast message.

By default the toast is shown full screen in the terminal and the command
exits once it has slid away. With --remote the message is sent to the
pilltoastd daemon and shown on the desktop instead.

Examples:
  # Show an info toast at the bottom
  pilltoast show "Saved"

  # Show a failure at the top for four seconds
  pilltoast show --style fail --location top --duration 4s "Upload failed"

  # Show on the desktop
  pilltoast show --remote --style success "Build finished"

  # Print the lifecycle without drawing anything
  pilltoast show --dry-run "Saved"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.style, "style", "s", "",
		"Style name (info, success, fail, warn or a configured style)")
	showCmd.Flags().StringVarP(&showOpts.location, "location", "l", "",
		"Screen edge (top, bottom)")
	showCmd.Flags().StringVarP(&showOpts.duration, "duration", "d", "",
		"Hold time (short, average or a duration like 4s)")
	showCmd.Flags().BoolVarP(&showOpts.remote, "remote", "r", false,
		"Send the toast to the pilltoastd daemon")
	showCmd.Flags().BoolVar(&showOpts.dryRun, "dry-run", false,
		"Run the lifecycle without drawing and print each state")
}

func runShow(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	if showOpts.remote {
		return showRemote(cmd.Context(), message)
	}

	loc, d, err := toastArgs(showOpts.location, showOpts.duration)
	if err != nil {
		return err
	}
	if showOpts.dryRun {
		return showDryRun(cmd.Context(), cmd.OutOrStdout(), message, loc, d)
	}
	return showTerminal(cmd.Context(), message, loc, d)
}

func showRemote(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(contextOrBackground(ctx), 5*time.Second)
	defer cancel()

	client, err := dbus.Connect()
	if err != nil {
		return err
	}
	return client.Show(ctx, dbus.ShowRequest{
		Message:  message,
		Style:    showOpts.style,
		Location: showOpts.location,
		Duration: showOpts.duration,
	})
}

func showTerminal(ctx context.Context, message string, loc toast.Location, d toast.Duration) error {
	reg, err := loadStyles()
	if err != nil {
		return err
	}
	sound := soundPlayer(reg)
	if sound != nil {
		defer sound.Stop()
	}

	session := tui.NewSession(tui.Options{
		Styles:   reg,
		Animator: cfg.Animation.Animator,
		Sound:    hooksSound(sound),
		Logger:   logger,
	})
	final, err := tui.Run(contextOrBackground(ctx), tui.NewShow(session, message, styleArg(showOpts.style), loc, d))
	if err != nil {
		return err
	}
	if m, ok := final.(tui.ShowModel); ok {
		return m.Err()
	}
	return nil
}

// showDryRun drives a presenter on a goroutine loop with no window and
// prints every transition with its offset from the first.
func showDryRun(ctx context.Context, out io.Writer, message string, loc toast.Location, d toast.Duration) error {
	reg, err := loadStyles()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := toast.NewLoop()
	var start time.Time
	presenter := toast.NewPresenter(toast.Options{
		Platform: toast.StaticPlatform{Screen: layout.Rect{
			W: float64(cfg.Display.ScreenWidth),
			H: float64(cfg.Display.ScreenHeight),
		}},
		Executor: loop,
		Animator: cfg.Animation.Animator(loop),
		Styles:   reg,
		Logger:   logger,
		Hooks: toast.Hooks{
			OnState: func(id string, s toast.State) {
				if s == toast.Created {
					start = time.Now()
				}
				fmt.Fprintf(out, "%8s  %-10s %s\n", time.Since(start).Round(time.Millisecond), s, id)
				if s == toast.Destroyed {
					cancel()
				}
			},
		},
	})

	if err := presenter.ShowPreset(message, styleArg(showOpts.style), loc, d); err != nil {
		return err
	}
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
