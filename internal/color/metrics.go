package color

// Brightness is the perceived brightness (HSP luma), in [0, 1].
func (c Info) Brightness() float64 {
	return float64(299*c.R+587*c.G+114*c.B) / 1000 / 255
}

// Whiteness is the HWB whiteness: the smallest channel over 255.
func (c Info) Whiteness() float64 {
	return float64(min(c.R, c.G, c.B)) / 255
}

// Value is the HSV value: the largest channel over 255.
func (c Info) Value() float64 {
	return float64(max(c.R, c.G, c.B)) / 255
}

// Blackness is the HWB blackness, 1 - Value.
func (c Info) Blackness() float64 {
	return 1 - c.Value()
}

// IsDark reports whether the color's brightness is below one half.
func (c Info) IsDark() bool {
	return c.Brightness() < 0.5
}

// Metrics groups the four derived measures of a color.
type Metrics struct {
	Brightness float64
	Whiteness  float64
	Value      float64
	Blackness  float64
}

// Metrics computes all four measures at once.
func (c Info) Metrics() Metrics {
	return Metrics{
		Brightness: c.Brightness(),
		Whiteness:  c.Whiteness(),
		Value:      c.Value(),
		Blackness:  c.Blackness(),
	}
}

// Measure resolves src and returns its metrics.
func (p *Parser) Measure(src Source) (Metrics, error) {
	c, err := p.Parse(src)
	if err != nil {
		return Metrics{}, err
	}
	return c.Metrics(), nil
}
