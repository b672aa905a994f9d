package color

import (
	"fmt"
	imgcolor "image/color"
)

// Source is anything Parse accepts. The accepted shapes, tried in this order, are:
//
//   - a ColorLike (including Info), used verbatim
//   - a string: transparent, a color name, hex, rgb()/rgba(), hsl()/hsla()
//   - a []float64 or []int tuple of 3 or 4 elements, read as r, g, b[, a]
//   - Channels, an explicit model plus channel values
//   - Fields (or map[string]float64) keyed by r, g, b, h, s, l, a
//   - an image/color.Color
type Source any

// ColorLike is implemented by values that can describe themselves as a canonical record.
type ColorLike interface {
	ColorInfo() Info
}

// Channels tags a channel list with its model: r,g,b[,a] or h,s,l[,a].
type Channels struct {
	Model  Model
	Values []float64
}

// Fields is a partial set of named channels. Any of r, g, b marks RGB intent;
// otherwise any of h, s, l marks HSL intent. a is read in either case.
// Channels that are not given come from the base record when there is one.
type Fields map[string]float64

// Parse resolves any supported source into a canonical record.
func (p *Parser) Parse(src Source) (Info, error) {
	return p.parseOnto(src, nil)
}

// parseOnto resolves src, filling channels the source leaves out from base.
func (p *Parser) parseOnto(src Source, base *Info) (Info, error) {
	if like, ok := src.(ColorLike); ok {
		return like.ColorInfo(), nil
	}

	r, err := p.resolve(src)
	if err != nil {
		return Info{}, err
	}
	return build(r, base), nil
}

func (p *Parser) resolve(src Source) (raw, error) {
	switch v := src.(type) {
	case string:
		return p.parseString(v)
	case []float64:
		return resolveTuple(v)
	case []int:
		f := make([]float64, len(v))
		for i, n := range v {
			f[i] = float64(n)
		}
		return resolveTuple(f)
	case Channels:
		return resolveChannels(v)
	case Fields:
		return resolveFields(v), nil
	case map[string]float64:
		return resolveFields(v), nil
	case imgcolor.Color:
		c := imgcolor.NRGBAModel.Convert(v).(imgcolor.NRGBA)
		return fullRaw(ModelRGB, float64(c.R), float64(c.G), float64(c.B), float64(c.A)/255), nil
	case nil:
		return raw{}, fmt.Errorf("%w: nil", ErrUnsupportedSource)
	default:
		return raw{}, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

func resolveTuple(v []float64) (raw, error) {
	if len(v) != 3 && len(v) != 4 {
		return raw{}, fmt.Errorf("%w: tuple needs 3 or 4 channels, got %d", ErrUnsupportedSource, len(v))
	}
	r := raw{model: ModelRGB}
	for i, c := range v {
		r.c[i] = c
		r.set[i] = true
	}
	return r, nil
}

func resolveChannels(ch Channels) (raw, error) {
	if ch.Model != ModelRGB && ch.Model != ModelHSL {
		return raw{}, fmt.Errorf("%w: unknown model %q", ErrUnsupportedSource, ch.Model)
	}
	r, err := resolveTuple(ch.Values)
	if err != nil {
		return raw{}, err
	}
	r.model = ch.Model
	return r, nil
}

func resolveFields(f map[string]float64) raw {
	model := ModelRGB
	if !hasAny(f, "r", "g", "b") && hasAny(f, "h", "s", "l") {
		model = ModelHSL
	}

	r := raw{model: model}
	for i, key := range channelKeys(model) {
		if v, ok := f[key]; ok {
			r.c[i] = v
			r.set[i] = true
		}
	}
	return r
}

func hasAny(f map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := f[k]; ok {
			return true
		}
	}
	return false
}

func channelKeys(m Model) [4]string {
	if m == ModelHSL {
		return [4]string{"h", "s", "l", "a"}
	}
	return [4]string{"r", "g", "b", "a"}
}
