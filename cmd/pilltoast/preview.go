package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pilltoast/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Try out styles interactively",
	Long: `Launch an interactive playground for toasts.

Type a message and press enter to show it. Styles come from the config
file, so custom styles can be tried before using them elsewhere.

Key bindings:
  enter       Show the toast
  tab         Next style
  shift+tab   Previous style
  ctrl+t      Toggle top/bottom
  ctrl+d      Cycle duration
  f1          Show help
  esc         Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
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
	_, err = tui.Run(contextOrBackground(cmd.Context()), tui.NewPreview(session))
	return err
}
