package color

import "math"

// build clamps the resolved channels, derives the missing color space and
// formats the string forms. It is the only place an Info is assembled.
func build(r raw, base *Info) Info {
	keys := channelKeys(r.model)
	for i := range r.c {
		if r.set[i] {
			continue
		}
		switch {
		case base != nil:
			r.c[i], _ = base.Channel(keys[i])
		case i == 3:
			r.c[i] = 1
		}
	}

	var c Info
	if r.model == ModelHSL {
		if !math.IsNaN(r.c[0]) && !math.IsInf(r.c[0], 0) {
			c.H = NormalizeHue(r.c[0])
		}
		c.S = clamp(r.c[1], 0, 1)
		c.L = clamp(r.c[2], 0, 1)
		rf, gf, bf := HSLToRGB(c.H, c.S, c.L)
		c.R, c.G, c.B = toByte(rf), toByte(gf), toByte(bf)
	} else {
		c.R, c.G, c.B = toByte(r.c[0]), toByte(r.c[1]), toByte(r.c[2])
		h, s, l := RGBToHSL(float64(c.R), float64(c.G), float64(c.B))
		c.H = NormalizeHue(h)
		c.S = clamp(s, 0, 1)
		c.L = clamp(l, 0, 1)
	}
	c.A = clamp(r.c[3], 0, 1)

	c.Hex = r.hex
	if c.Hex == "" {
		c.Hex = formatHex(c.R, c.G, c.B, c.A)
	}
	c.RGB = formatRGB(c.R, c.G, c.B)
	c.RGBA = formatRGBA(c.R, c.G, c.B, c.A)
	c.HSL = formatHSL(c.H, c.S, c.L)
	c.HSLA = formatHSLA(c.H, c.S, c.L, c.A)
	return c
}

// clamp limits v to [lo, hi]; NaN becomes lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toByte(v float64) int {
	return int(math.Round(clamp(v, 0, 255)))
}
