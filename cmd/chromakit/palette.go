package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jsvensson/chromakit"
	"github.com/jsvensson/chromakit/internal/config"
	"github.com/spf13/cobra"
)

func (c *cli) paletteCmd() *cobra.Command {
	var (
		form      string
		themeOnly bool
	)
	cmd := &cobra.Command{
		Use:   "palette [file]",
		Short: "List the resolved colors of a palette file",
		Long: `List every resolved color in a palette file, palette block first and
then theme block. The file defaults to generate.palette.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.settings.Palette
			if len(args) == 1 {
				path = args[0]
			}
			t, err := chromakit.Load(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if t.Meta.Name != "" {
				fmt.Fprintf(w, "# %s\n", t.Meta.Name)
			}
			if !themeOnly {
				if err := writeEntries(w, "palette", t.Palette.Entries(), form); err != nil {
					return err
				}
			}
			if t.Theme != nil {
				if err := writeEntries(w, "theme", t.Theme.Entries(), form); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringP("palette", "p", "palette.hcl", "palette file to read when no argument is given")
	cmd.Flags().BoolVar(&themeOnly, "theme", false, "only list the theme block")
	addNotationFlag(cmd, &form)
	c.bind(cmd, flagBinding{config.KeyPalette, "palette"})
	return cmd
}

func writeEntries(w io.Writer, section string, entries []chromakit.Entry, form string) error {
	for _, e := range entries {
		s, err := notation(e.Color, form)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s.%s\t%s\n", section, e.Name, s)
	}
	return nil
}
