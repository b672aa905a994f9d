package color

import (
	"fmt"
	imgcolor "image/color"
	"math"
	"strconv"
	"strings"
)

// Model names the color space a set of channels is expressed in.
type Model string

const (
	ModelRGB Model = "rgb"
	ModelHSL Model = "hsl"
)

// Info is the canonical color record. All fields are consistent with each other:
// the string forms are derived from the numeric channels, and RGB and HSL describe
// the same color within rounding. Info values are never modified after they are
// built, so they can be copied and shared freely.
type Info struct {
	R, G, B int     // [0, 255]
	H       float64 // [0, 360)
	S, L, A float64 // [0, 1]

	Hex  string // #rrggbb, or #rrggbbaa when A < 1
	RGB  string // rgb(r,g,b)
	RGBA string // rgba(r,g,b,a)
	HSL  string // hsl(h,s%,l%)
	HSLA string // hsla(h,s%,l%,a)
}

// ColorInfo returns the record itself, so an Info can be used wherever a ColorLike is accepted.
func (c Info) ColorInfo() Info {
	return c
}

// String returns the hex form, e.g. "#eb6f92".
func (c Info) String() string {
	return c.Hex
}

// NRGBA converts the record to a non-premultiplied image/color value.
func (c Info) NRGBA() imgcolor.NRGBA {
	return imgcolor.NRGBA{
		R: uint8(c.R),
		G: uint8(c.G),
		B: uint8(c.B),
		A: alphaByte(c.A),
	}
}

// Channel returns the numeric value of a channel key (r, g, b, h, s, l or a).
func (c Info) Channel(key string) (float64, bool) {
	switch key {
	case "r":
		return float64(c.R), true
	case "g":
		return float64(c.G), true
	case "b":
		return float64(c.B), true
	case "h":
		return c.H, true
	case "s":
		return c.S, true
	case "l":
		return c.L, true
	case "a":
		return c.A, true
	}
	return 0, false
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(a * 255))
}

// formatHex adds the alpha byte only when it is below ff, so the hex always
// decodes to the alpha it prints.
func formatHex(r, g, b int, a float64) string {
	if ab := alphaByte(a); ab < 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, ab)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func formatRGB(r, g, b int) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

func formatRGBA(r, g, b int, a float64) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatFloat(a))
}

func formatHSL(h, s, l float64) string {
	return fmt.Sprintf("hsl(%s,%s%%,%s%%)", formatHue(h), formatFloat(s*100), formatFloat(l*100))
}

func formatHSLA(h, s, l, a float64) string {
	return fmt.Sprintf("hsla(%s,%s%%,%s%%,%s)", formatHue(h), formatFloat(s*100), formatFloat(l*100), formatFloat(a))
}

// formatHue is formatFloat for hues; values that round up to 360 print as 0.
func formatHue(h float64) string {
	text := formatFloat(h)
	if text == "360" {
		return "0"
	}
	return text
}

// formatFloat prints at most three decimals with trailing zeros removed: 0.5, 1, 327.6.
func formatFloat(v float64) string {
	text := strconv.FormatFloat(v, 'f', 3, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "-0" {
		return "0"
	}
	return text
}
