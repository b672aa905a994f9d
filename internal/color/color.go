// Package color parses color sources into canonical records and derives
// blends, adjustments and metrics from them. Everything here is pure: no I/O,
// no shared mutable state apart from the optional Swatch holder.
package color

// ParseString parses a color string such as "#f09", "royalblue" or "hsl(270 60% 50% / .5)".
func ParseString(s string) (Info, error) {
	return defaultParser.Parse(s)
}

// Parse resolves any supported source using the default name table.
func Parse(src Source) (Info, error) {
	return defaultParser.Parse(src)
}

// Mix blends base toward other using the default name table.
func Mix(base, other Source, opts ...MixOption) (Info, error) {
	return defaultParser.Mix(base, other, opts...)
}

func Lighten(src Source, per float64) (Info, error) {
	return defaultParser.Lighten(src, per)
}

func Darken(src Source, per float64) (Info, error) {
	return defaultParser.Darken(src, per)
}

func Saturate(src Source, per float64) (Info, error) {
	return defaultParser.Saturate(src, per)
}

func Desaturate(src Source, per float64) (Info, error) {
	return defaultParser.Desaturate(src, per)
}

func Grayscale(src Source) (Info, error) {
	return defaultParser.Grayscale(src)
}

func Invert(src Source) (Info, error) {
	return defaultParser.Invert(src)
}

// Brightness resolves src and returns its perceived brightness.
func Brightness(src Source) (float64, error) {
	m, err := defaultParser.Measure(src)
	return m.Brightness, err
}

// Whiteness resolves src and returns its HWB whiteness.
func Whiteness(src Source) (float64, error) {
	m, err := defaultParser.Measure(src)
	return m.Whiteness, err
}

// Value resolves src and returns its HSV value.
func Value(src Source) (float64, error) {
	m, err := defaultParser.Measure(src)
	return m.Value, err
}

// Blackness resolves src and returns its HWB blackness.
func Blackness(src Source) (float64, error) {
	m, err := defaultParser.Measure(src)
	return m.Blackness, err
}
