package color

import "math"

// HSLToRGB converts a hue in degrees and saturation/lightness in [0, 1]
// to red, green and blue in float space [0, 255]. Hues outside [0, 360) wrap.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	h = NormalizeHue(h)
	var max, min float64
	if l < 0.5 {
		max = l + l*s
		min = l - l*s
	} else {
		max = l + (1-l)*s
		min = l - (1-l)*s
	}

	q := h / (360 / 6)
	switch {
	case q < 1:
		r, g, b = max, min+(max-min)*q, min
	case q < 2:
		r, g, b = max-(max-min)*(q-1), max, min
	case q < 3:
		r, g, b = min, max, min+(max-min)*(q-2)
	case q < 4:
		r, g, b = min, max-(max-min)*(q-3), max
	case q < 5:
		r, g, b = min+(max-min)*(q-4), min, max
	default:
		r, g, b = max, min, max-(max-min)*(q-5)
	}

	return r * 255, g * 255, b * 255
}

// RGBToHSL converts red, green and blue in [0, 255] to a hue in degrees and
// saturation/lightness in [0, 1]. The hue is not normalized: pure red yields 360.
//
// The hue branch is selected by the channel holding the minimum, not the maximum.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	r, g, b = r/255, g/255, b/255

	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	diff := max - min
	l = (max + min) / 2

	if diff != 0 {
		s = diff / (1 - math.Abs(max+min-1))
	}

	switch {
	case min == max:
		h = 0
	case min == r:
		h = 60*(b-g)/diff + 180
	case min == g:
		h = 60*(r-b)/diff + 300
	default:
		h = 60*(g-r)/diff + 60
	}

	return h, s, l
}
