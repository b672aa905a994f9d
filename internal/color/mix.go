package color

import "math"

// MixOption configures Mix.
type MixOption func(*mixOptions)

type mixOptions struct {
	per   float64
	model Model
}

func defaultMixOptions() mixOptions {
	return mixOptions{per: 0.5, model: ModelRGB}
}

// WithWeight sets how far to move from the base toward the other color:
// 0 returns the base, 1 returns the other color.
func WithWeight(per float64) MixOption {
	return func(o *mixOptions) {
		o.per = per
	}
}

// WithModel sets the color space the channels are blended in.
func WithModel(m Model) MixOption {
	return func(o *mixOptions) {
		o.model = m
	}
}

// Mix blends base toward other. By default it moves halfway in RGB space.
func (p *Parser) Mix(base, other Source, opts ...MixOption) (Info, error) {
	o := defaultMixOptions()
	for _, opt := range opts {
		opt(&o)
	}

	from, err := p.Parse(base)
	if err != nil {
		return Info{}, err
	}
	to, err := p.Parse(other)
	if err != nil {
		return Info{}, err
	}

	switch o.per {
	case 0:
		return from, nil
	case 1:
		return to, nil
	}

	model := o.model
	if model != ModelHSL {
		model = ModelRGB
	}

	r := raw{model: model, set: [4]bool{true, true, true, true}}
	for i, key := range channelKeys(model) {
		a, _ := from.Channel(key)
		b, _ := to.Channel(key)
		r.c[i] = mixChannel(a, b, o.per)
	}
	return build(r, nil), nil
}

// mixChannel moves from a toward b by the fraction per of their distance.
func mixChannel(a, b, per float64) float64 {
	delta := math.Abs(a - b)
	direction := 1.0
	if a > b {
		direction = -1
	}
	return a + delta*per*direction
}
