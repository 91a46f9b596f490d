package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pilltoast/internal/dbus"
)

var statusOpts struct {
	json bool
}

// DaemonStatus is the JSON form of the status output.
type DaemonStatus struct {
	Running bool      `json:"running"`
	Active  uint32    `json:"active"`
	Started time.Time `json:"started,omitzero"`
	Styles  []string  `json:"styles,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the pilltoastd daemon",
	Long: `Query the pilltoastd daemon over D-Bus and print how many toasts are
on screen, when it started and which styles it knows.

Exits successfully when the daemon is not running; the output says so.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), 5*time.Second)
	defer cancel()

	status, err := queryStatus(ctx)
	if err != nil {
		return err
	}
	if statusOpts.json {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(status)
	}
	return writeStatus(cmd.OutOrStdout(), status)
}

func queryStatus(ctx context.Context) (DaemonStatus, error) {
	client, err := dbus.Connect()
	if err != nil {
		return DaemonStatus{}, err
	}
	st, err := client.Status(ctx)
	if errors.Is(err, dbus.ErrNotRunning) {
		return DaemonStatus{}, nil
	}
	if err != nil {
		return DaemonStatus{}, err
	}
	names, err := client.Styles(ctx)
	if err != nil {
		return DaemonStatus{}, err
	}
	return DaemonStatus{Running: true, Active: st.Active, Started: st.Started, Styles: names}, nil
}

func writeStatus(w io.Writer, s DaemonStatus) error {
	if !s.Running {
		_, err := fmt.Fprintln(w, "pilltoastd is not running")
		return err
	}
	_, err := fmt.Fprintf(w, "pilltoastd running since %s\n%s on screen\nstyles: %s\n",
		humanize.Time(s.Started),
		humanize.Plural(int(s.Active), "toast", "toasts"),
		strings.Join(s.Styles, ", "),
	)
	return err
}
