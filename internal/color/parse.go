package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexPattern    = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbPattern    = regexp.MustCompile(`^rgba?\((.*)\)$`)
	hslPattern    = regexp.MustCompile(`^hsla?\((.*)\)$`)
	numberPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:e[+-]?\d+)?)(%?)$`)
)

// raw holds the channels resolved from a source before the builder fills in
// the other color space. c holds r,g,b,a or h,s,l,a depending on model.
type raw struct {
	model Model
	c     [4]float64
	set   [4]bool
	hex   string // canonical literal, only when the source was hex notation
}

func fullRaw(model Model, c1, c2, c3, a float64) raw {
	return raw{
		model: model,
		c:     [4]float64{c1, c2, c3, a},
		set:   [4]bool{true, true, true, true},
	}
}

// Parser turns color strings into canonical records using a named color table.
type Parser struct {
	Names NameLookup
}

// NewParser returns a Parser using the given name table, or DefaultNames when nil.
func NewParser(names NameLookup) *Parser {
	if names == nil {
		names = DefaultNames
	}
	return &Parser{Names: names}
}

var defaultParser = NewParser(nil)

// parseString dispatches on the trimmed, lowercased input:
// transparent, named color, hex, rgb()/rgba(), hsl()/hsla().
func (p *Parser) parseString(src string) (raw, error) {
	s := strings.ToLower(strings.TrimSpace(src))

	if s == "transparent" {
		return fullRaw(ModelRGB, 0, 0, 0, 0), nil
	}

	if p.Names != nil {
		if hex, ok := p.Names.Lookup(s); ok {
			s = strings.ToLower(hex)
		}
	}

	if hexPattern.MatchString(s) {
		return parseHexDigits(s[1:])
	}

	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return parseRGBArgs(src, m[1])
	}

	if m := hslPattern.FindStringSubmatch(s); m != nil {
		return parseHSLArgs(src, m[1])
	}

	return raw{}, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, src)
}

// parseHexDigits decodes 3, 4, 6 or 8 hex digits (without the leading #).
func parseHexDigits(digits string) (raw, error) {
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for _, d := range digits {
			b.WriteRune(d)
			b.WriteRune(d)
		}
		digits = b.String()
	}

	var bytes [4]uint64
	bytes[3] = 255
	for i := 0; i*2 < len(digits); i++ {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return raw{}, fmt.Errorf("%w: #%s: %v", ErrMalformedHex, digits, err)
		}
		bytes[i] = v
	}

	a := 1.0
	if len(digits) == 8 {
		a = float64(bytes[3]) / 255
	}

	r := fullRaw(ModelRGB, float64(bytes[0]), float64(bytes[1]), float64(bytes[2]), a)
	r.hex = formatHex(int(bytes[0]), int(bytes[1]), int(bytes[2]), a)
	return r, nil
}

func parseRGBArgs(src, body string) (raw, error) {
	channels, alpha, ok := splitArgs(body)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, src)
	}

	var rgb [3]float64
	for i, tok := range channels {
		v, ok := parsePercent(tok, 255)
		if !ok {
			return raw{}, fmt.Errorf("%w: %q: bad channel %q", ErrUnrecognizedFormat, src, tok)
		}
		rgb[i] = v
	}

	a, ok := parseAlpha(alpha)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q: bad alpha %q", ErrUnrecognizedFormat, src, alpha)
	}

	return fullRaw(ModelRGB, rgb[0], rgb[1], rgb[2], a), nil
}

func parseHSLArgs(src, body string) (raw, error) {
	channels, alpha, ok := splitArgs(body)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, src)
	}

	h, err := ParseHue(channels[0])
	if err != nil {
		return raw{}, fmt.Errorf("parsing %q: %w", src, err)
	}

	s, ok := parsePercent(channels[1], 1)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q: bad saturation %q", ErrUnrecognizedFormat, src, channels[1])
	}
	l, ok := parsePercent(channels[2], 1)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q: bad lightness %q", ErrUnrecognizedFormat, src, channels[2])
	}

	a, ok := parseAlpha(alpha)
	if !ok {
		return raw{}, fmt.Errorf("%w: %q: bad alpha %q", ErrUnrecognizedFormat, src, alpha)
	}

	return fullRaw(ModelHSL, h, s, l, a), nil
}

// splitArgs splits the inside of a functional notation into three channel tokens
// and an optional alpha token. Tokens are separated either by single commas or
// by whitespace; the alpha may also be introduced by a slash. Empty tokens fail.
func splitArgs(body string) (channels []string, alpha string, ok bool) {
	head, tail, slashed := strings.Cut(body, "/")
	channels, ok = splitFields(head)
	if !ok {
		return nil, "", false
	}

	if slashed {
		rest, ok := splitFields(tail)
		if !ok || len(channels) != 3 || len(rest) != 1 {
			return nil, "", false
		}
		return channels, rest[0], true
	}

	switch len(channels) {
	case 3:
		return channels, "", true
	case 4:
		return channels[:3], channels[3], true
	}
	return nil, "", false
}

// splitFields splits on commas when s contains one, otherwise on whitespace.
// In comma form every token must be non-empty and free of inner whitespace.
func splitFields(s string) ([]string, bool) {
	if !strings.Contains(s, ",") {
		return strings.Fields(s), true
	}
	parts := strings.Split(s, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.ContainsAny(part, " \t\n\r") {
			return nil, false
		}
		parts[i] = part
	}
	return parts, true
}

// parsePercent parses a bare number, or a percentage scaled as value*max/100.
func parsePercent(tok string, max float64) (float64, bool) {
	m := numberPattern.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "%" {
		v = v * max / 100
	}
	return v, true
}

// parseAlpha parses an optional alpha token; a missing token means fully opaque.
func parseAlpha(tok string) (float64, bool) {
	if tok == "" {
		return 1, true
	}
	return parsePercent(tok, 1)
}
