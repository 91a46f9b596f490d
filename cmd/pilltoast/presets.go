package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/style"
)

var presetsOpts struct {
	format string
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available styles",
	Long: `List the built-in presets and the styles defined in the config file.

The toml format prints [presets] and [styles] blocks that can be pasted
into the config file as a starting point.`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().StringVarP(&presetsOpts.format, "format", "f", "table",
		"Output format (table, toml, yaml)")
}

func runPresets(cmd *cobra.Command, args []string) error {
	reg, err := loadStyles()
	if err != nil {
		return err
	}
	return writePresets(cmd.OutOrStdout(), reg, presetsOpts.format)
}

// styleTables mirrors the config file layout.
type styleTables struct {
	Presets map[string]config.StyleConfig `toml:"presets" yaml:"presets"`
	Styles  map[string]config.StyleConfig `toml:"styles,omitempty" yaml:"styles,omitempty"`
}

func writePresets(w io.Writer, reg *style.Registry, format string) error {
	tables := styleTables{
		Presets: make(map[string]config.StyleConfig),
		Styles:  make(map[string]config.StyleConfig),
	}
	names := reg.Names()
	for _, name := range names {
		st, ok := reg.Get(name)
		if !ok {
			continue
		}
		if style.IsPreset(name) {
			tables.Presets[name] = config.FromStyle(st)
		} else {
			tables.Styles[name] = config.FromStyle(st)
		}
	}

	switch format {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tBACKGROUND\tTEXT\tFONT\tICON\tSOUND")
		for _, name := range names {
			sc, ok := tables.Presets[name]
			if !ok {
				sc = tables.Styles[name]
			}
			font := strings.TrimSpace(fmt.Sprintf("%s %gpt", sc.FontFamily, sc.FontSize))
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				name, sc.Background, sc.Text, font, dash(sc.Icon), dash(sc.Sound))
		}
		return tw.Flush()

	case "toml":
		data, err := toml.Marshal(tables)
		if err != nil {
			return fmt.Errorf("failed to marshal TOML: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format %q, must be one of: table, toml, yaml", format)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
