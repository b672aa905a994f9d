package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jsvensson/chromakit"
	"github.com/jsvensson/chromakit/internal/config"
	"github.com/spf13/cobra"
)

// notation picks one string form of c.
func notation(c chromakit.Info, form string) (string, error) {
	switch form {
	case "hex":
		return c.Hex, nil
	case "rgb":
		return c.RGB, nil
	case "rgba":
		return c.RGBA, nil
	case "hsl":
		return c.HSL, nil
	case "hsla":
		return c.HSLA, nil
	default:
		return "", fmt.Errorf("unknown notation %q (valid: hex, rgb, rgba, hsl, hsla)", form)
	}
}

func printColor(w io.Writer, c chromakit.Info, form string) error {
	s, err := notation(c, form)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func addNotationFlag(cmd *cobra.Command, form *string) {
	cmd.Flags().StringVarP(form, "as", "a", "hex", "output notation: hex, rgb, rgba, hsl or hsla")
}

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <color>...",
		Short: "Show every notation and the metrics of one or more colors",
		Long: `Show every notation and the metrics of one or more colors.

A color is a name (royalblue), a hex code (#f09, #ff009980), or an
rgb()/rgba()/hsl()/hsla() function.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for i, arg := range args {
				col, err := chromakit.ParseString(arg)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(w)
				}
				writeInspection(w, arg, col)
			}
			return w.Flush()
		},
	}
}

func writeInspection(w io.Writer, input string, c chromakit.Info) {
	m := c.Metrics()
	tone := "light"
	if c.IsDark() {
		tone = "dark"
	}

	fmt.Fprintf(w, "input\t%s\n", input)
	fmt.Fprintf(w, "hex\t%s\n", c.Hex)
	fmt.Fprintf(w, "rgb\t%s\n", c.RGB)
	fmt.Fprintf(w, "rgba\t%s\n", c.RGBA)
	fmt.Fprintf(w, "hsl\t%s\n", c.HSL)
	fmt.Fprintf(w, "hsla\t%s\n", c.HSLA)
	fmt.Fprintf(w, "brightness\t%.3f (%s)\n", m.Brightness, tone)
	fmt.Fprintf(w, "whiteness\t%.3f\n", m.Whiteness)
	fmt.Fprintf(w, "value\t%.3f\n", m.Value)
	fmt.Fprintf(w, "blackness\t%.3f\n", m.Blackness)
}

func (c *cli) mixCmd() *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   "mix <base> <other>",
		Short: "Blend a color toward another",
		Long: `Blend base toward other. --weight 0 returns base unchanged and
--weight 1 returns other. Defaults come from mix.weight and mix.model
in the config file or CHROMAKIT_MIX_WEIGHT and CHROMAKIT_MIX_MODEL.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mixed, err := chromakit.Mix(args[0], args[1], c.settings.MixOptions()...)
			if err != nil {
				return err
			}
			log.Debugf("mix %s %s weight=%v model=%s", args[0], args[1], c.settings.MixWeight, c.settings.MixModel)
			return printColor(cmd.OutOrStdout(), mixed, form)
		},
	}

	cmd.Flags().Float64P("weight", "w", 0.5, "how far to move toward other, from 0 to 1")
	cmd.Flags().StringP("model", "m", "rgb", "color space to blend in: rgb or hsl")
	addNotationFlag(cmd, &form)
	c.bind(cmd,
		flagBinding{config.KeyMixWeight, "weight"},
		flagBinding{config.KeyMixModel, "model"},
	)
	return cmd
}

type adjustFunc func(chromakit.Source, float64) (chromakit.Info, error)

var (
	adjustLighten    adjustFunc = chromakit.Lighten
	adjustDarken     adjustFunc = chromakit.Darken
	adjustSaturate   adjustFunc = chromakit.Saturate
	adjustDesaturate adjustFunc = chromakit.Desaturate
)

func (c *cli) adjustCmd(name, short string, fn adjustFunc) *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   name + " <color> <amount>",
		Short: short,
		Long:  short + ". amount is a fraction, e.g. 0.1; results are clamped.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[1])
			}
			adjusted, err := fn(args[0], amount)
			if err != nil {
				return err
			}
			return printColor(cmd.OutOrStdout(), adjusted, form)
		},
	}
	addNotationFlag(cmd, &form)
	return cmd
}

type unaryFunc func(chromakit.Source) (chromakit.Info, error)

var (
	unaryGrayscale unaryFunc = chromakit.Grayscale
	unaryInvert    unaryFunc = chromakit.Invert
)

func (c *cli) unaryCmd(name, short string, fn unaryFunc) *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   name + " <color>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := fn(args[0])
			if err != nil {
				return err
			}
			return printColor(cmd.OutOrStdout(), out, form)
		},
	}
	addNotationFlag(cmd, &form)
	return cmd
}
