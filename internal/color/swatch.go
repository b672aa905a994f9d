package color

// Swatch holds one current color record and replaces it wholesale on every change.
// Setters build a new record from the current one, overriding only the addressed
// channel, so the held record is always fully resolved.
//
// A Swatch is not safe for concurrent use; it belongs to a single owner at a time.
// The zero Swatch uses the default name table and holds an empty record until
// the first Set.
type Swatch struct {
	parser  *Parser
	current Info
}

func (s *Swatch) p() *Parser {
	if s.parser == nil {
		return defaultParser
	}
	return s.parser
}

// NewSwatch resolves src with the default name table and holds the result.
func NewSwatch(src Source) (*Swatch, error) {
	return defaultParser.NewSwatch(src)
}

// NewSwatch resolves src and holds the result.
func (p *Parser) NewSwatch(src Source) (*Swatch, error) {
	c, err := p.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Swatch{parser: p, current: c}, nil
}

// Info returns the current record.
func (s *Swatch) Info() Info {
	return s.current
}

// Set replaces the current record. Channels src does not specify keep their
// current values, e.g. Fields{"a": 0.5} only changes the alpha.
func (s *Swatch) Set(src Source) error {
	c, err := s.p().parseOnto(src, &s.current)
	if err != nil {
		return err
	}
	s.current = c
	return nil
}

func (s *Swatch) with(key string, v float64) Info {
	// Fields never fail to resolve.
	c, _ := s.p().parseOnto(Fields{key: v}, &s.current)
	s.current = c
	return c
}

func (s *Swatch) Red() int            { return s.current.R }
func (s *Swatch) Green() int          { return s.current.G }
func (s *Swatch) Blue() int           { return s.current.B }
func (s *Swatch) Hue() float64        { return s.current.H }
func (s *Swatch) Saturation() float64 { return s.current.S }
func (s *Swatch) Lightness() float64  { return s.current.L }
func (s *Swatch) Alpha() float64      { return s.current.A }

func (s *Swatch) WithRed(v float64) Info        { return s.with("r", v) }
func (s *Swatch) WithGreen(v float64) Info      { return s.with("g", v) }
func (s *Swatch) WithBlue(v float64) Info       { return s.with("b", v) }
func (s *Swatch) WithHue(v float64) Info        { return s.with("h", v) }
func (s *Swatch) WithSaturation(v float64) Info { return s.with("s", v) }
func (s *Swatch) WithLightness(v float64) Info  { return s.with("l", v) }

// WithAlpha replaces the alpha. The color channels are carried over in RGB.
func (s *Swatch) WithAlpha(v float64) Info { return s.with("a", v) }

// Mix blends the current color toward other and stores the result.
func (s *Swatch) Mix(other Source, opts ...MixOption) (Info, error) {
	return s.apply(s.p().Mix(s.current, other, opts...))
}

func (s *Swatch) Lighten(per float64) Info {
	c, _ := s.apply(s.p().Lighten(s.current, per))
	return c
}

func (s *Swatch) Darken(per float64) Info {
	c, _ := s.apply(s.p().Darken(s.current, per))
	return c
}

func (s *Swatch) Saturate(per float64) Info {
	c, _ := s.apply(s.p().Saturate(s.current, per))
	return c
}

func (s *Swatch) Desaturate(per float64) Info {
	c, _ := s.apply(s.p().Desaturate(s.current, per))
	return c
}

func (s *Swatch) apply(c Info, err error) (Info, error) {
	if err != nil {
		return s.current, err
	}
	s.current = c
	return c, nil
}
