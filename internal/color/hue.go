package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// hueUnit matches a hue scalar with an optional angle unit, e.g. "90", "1.5turn", "-3.14rad".
var hueUnit = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:e[+-]?\d+)?)(deg|rad|grad|turn)?$`)

// ParseHue parses a hue with an optional unit (deg, rad, grad, turn) into degrees.
// The result is not normalized into [0, 360); see NormalizeHue.
func ParseHue(s string) (float64, error) {
	m := hueUnit.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedHue, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedHue, s, err)
	}

	switch m[2] {
	case "rad":
		return v * 180 / math.Pi, nil
	case "grad":
		return v / 400 * 360, nil
	case "turn":
		return v * 360, nil
	default:
		return v, nil
	}
}

// NormalizeHue wraps a hue in degrees into [0, 360) using floored modulo,
// so negative hues wrap around (-90 becomes 270).
func NormalizeHue(h float64) float64 {
	return math.Mod(math.Mod(h, 360)+360, 360)
}
