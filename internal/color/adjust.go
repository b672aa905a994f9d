package color

// Lighten adds 255*per to each of r, g and b. Channels are clamped at 0 and 255,
// so lightening and then darkening by the same amount is not an exact inverse
// once a channel has hit a boundary.
func (p *Parser) Lighten(src Source, per float64) (Info, error) {
	c, err := p.Parse(src)
	if err != nil {
		return Info{}, err
	}
	d := 255 * per
	return build(fullRaw(ModelRGB, float64(c.R)+d, float64(c.G)+d, float64(c.B)+d, c.A), nil), nil
}

// Darken subtracts 255*per from each of r, g and b.
func (p *Parser) Darken(src Source, per float64) (Info, error) {
	return p.Lighten(src, -per)
}

// Saturate adds per to the HSL saturation.
func (p *Parser) Saturate(src Source, per float64) (Info, error) {
	c, err := p.Parse(src)
	if err != nil {
		return Info{}, err
	}
	return build(fullRaw(ModelHSL, c.H, c.S+per, c.L, c.A), nil), nil
}

// Desaturate subtracts per from the HSL saturation.
func (p *Parser) Desaturate(src Source, per float64) (Info, error) {
	return p.Saturate(src, -per)
}

// Grayscale drops the saturation entirely, keeping hue, lightness and alpha.
func (p *Parser) Grayscale(src Source) (Info, error) {
	c, err := p.Parse(src)
	if err != nil {
		return Info{}, err
	}
	return build(fullRaw(ModelHSL, c.H, 0, c.L, c.A), nil), nil
}

// Invert replaces each of r, g and b with 255 minus its value.
func (p *Parser) Invert(src Source) (Info, error) {
	c, err := p.Parse(src)
	if err != nil {
		return Info{}, err
	}
	return build(fullRaw(ModelRGB, float64(255-c.R), float64(255-c.G), float64(255-c.B), c.A), nil), nil
}
