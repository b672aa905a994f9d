package main

import (
	"fmt"

	"github.com/jsvensson/chromakit"
	"github.com/jsvensson/chromakit/internal/config"
	"github.com/jsvensson/chromakit/internal/engine"
	"github.com/spf13/cobra"
)

func (c *cli) generateCmd() *cobra.Command {
	var (
		apps    []string
		cssFile string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate theme files from templates",
		Long: `Render every .tmpl file in the templates directory against the palette
file and write the results to the output directory. With --css, also
write the palette and theme as CSS custom properties.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.settings
			t, err := chromakit.Load(s.Palette)
			if err != nil {
				return err
			}

			e := &engine.Engine{
				TemplatesDir: s.Templates,
				OutputDir:    s.Out,
				Apps:         apps,
			}
			if err := e.Run(t); err != nil {
				return fmt.Errorf("generating: %w", err)
			}
			if cssFile != "" {
				if err := e.WriteCSS(t, cssFile, s.CSSPrefix); err != nil {
					return fmt.Errorf("generating: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated theme files in %s\n", s.Out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("palette", "p", "palette.hcl", "path to palette HCL file")
	flags.String("templates", "templates", "templates directory")
	flags.String("out", "output", "output directory")
	flags.StringArrayVar(&apps, "app", nil, "generate only for specific apps (can be repeated)")
	flags.StringVar(&cssFile, "css", "", "also write CSS custom properties to this file in the output directory")
	flags.String("css-prefix", "", "prefix for CSS custom property names")
	c.bind(cmd,
		flagBinding{config.KeyPalette, "palette"},
		flagBinding{config.KeyTemplates, "templates"},
		flagBinding{config.KeyOut, "out"},
		flagBinding{config.KeyCSSPrefix, "css-prefix"},
	)
	return cmd
}
