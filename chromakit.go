// Package chromakit turns color descriptions into canonical color records and
// derives blends, adjustments and metrics from them. It also loads HCL palette
// files whose entries are resolved through the same engine.
package chromakit

import (
	"fmt"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/parser"
	"github.com/jsvensson/chromakit/internal/theme"
)

type (
	// Info is the canonical color record.
	Info = color.Info
	// Model names a color space: ModelRGB or ModelHSL.
	Model = color.Model
	// Source is anything Parse accepts.
	Source     = color.Source
	ColorLike  = color.ColorLike
	Channels   = color.Channels
	Fields     = color.Fields
	MixOption  = color.MixOption
	Metrics    = color.Metrics
	Swatch     = color.Swatch
	Parser     = color.Parser
	NameLookup = color.NameLookup
	NameMap    = color.NameMap

	// Theme is a fully-resolved palette file.
	Theme = theme.Theme
	Meta  = theme.Meta
	Node  = theme.Node
	Entry = theme.Entry
)

const (
	ModelRGB = color.ModelRGB
	ModelHSL = color.ModelHSL
)

var (
	ErrMalformedHue       = color.ErrMalformedHue
	ErrMalformedHex       = color.ErrMalformedHex
	ErrUnrecognizedFormat = color.ErrUnrecognizedFormat
	ErrUnsupportedSource  = color.ErrUnsupportedSource
)

// NewParser returns a Parser that resolves color names through names.
func NewParser(names NameLookup) *Parser { return color.NewParser(names) }

// ParseString parses a color string such as "#f09", "royalblue" or "hsl(270 60% 50% / .5)".
func ParseString(s string) (Info, error) { return color.ParseString(s) }

// Parse resolves any supported source into a canonical record.
func Parse(src Source) (Info, error) { return color.Parse(src) }

// ParseHue converts a hue string with an optional deg, rad, grad or turn unit to degrees.
func ParseHue(s string) (float64, error) { return color.ParseHue(s) }

// NormalizeHue maps any hue in degrees into [0, 360).
func NormalizeHue(h float64) float64 { return color.NormalizeHue(h) }

func HSLToRGB(h, s, l float64) (r, g, b float64) { return color.HSLToRGB(h, s, l) }
func RGBToHSL(r, g, b float64) (h, s, l float64) { return color.RGBToHSL(r, g, b) }

// Mix blends base toward other, halfway in RGB space unless options say otherwise.
func Mix(base, other Source, opts ...MixOption) (Info, error) {
	return color.Mix(base, other, opts...)
}

func WithWeight(per float64) MixOption { return color.WithWeight(per) }
func WithModel(m Model) MixOption      { return color.WithModel(m) }

func Lighten(src Source, per float64) (Info, error)    { return color.Lighten(src, per) }
func Darken(src Source, per float64) (Info, error)     { return color.Darken(src, per) }
func Saturate(src Source, per float64) (Info, error)   { return color.Saturate(src, per) }
func Desaturate(src Source, per float64) (Info, error) { return color.Desaturate(src, per) }
func Grayscale(src Source) (Info, error)               { return color.Grayscale(src) }
func Invert(src Source) (Info, error)                  { return color.Invert(src) }

func Brightness(src Source) (float64, error) { return color.Brightness(src) }
func Whiteness(src Source) (float64, error)  { return color.Whiteness(src) }
func Value(src Source) (float64, error)      { return color.Value(src) }
func Blackness(src Source) (float64, error)  { return color.Blackness(src) }

// NewSwatch resolves src and returns a holder for it.
func NewSwatch(src Source) (*Swatch, error) { return color.NewSwatch(src) }

// Load parses an HCL palette file and returns a fully-resolved Theme.
func Load(path string) (*Theme, error) {
	t, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return t, nil
}
