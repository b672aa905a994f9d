package color

import "errors"

var (
	// ErrMalformedHue is returned when a hue string does not match <number>[deg|rad|grad|turn].
	ErrMalformedHue = errors.New("malformed hue")
	// ErrMalformedHex is returned when a string looks like hex notation but its
	// digits cannot be decoded into byte pairs.
	ErrMalformedHex = errors.New("malformed hex color")
	// ErrUnrecognizedFormat is returned when a string is not transparent, a named
	// color, hex, rgb() or hsl().
	ErrUnrecognizedFormat = errors.New("unrecognized color format")
	// ErrUnsupportedSource is returned for Go values outside the accepted source shapes.
	ErrUnsupportedSource = errors.New("unsupported color source")
)
