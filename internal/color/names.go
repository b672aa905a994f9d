package color

import (
	"fmt"

	"golang.org/x/image/colornames"
)

// NameLookup resolves a lowercase color name to a 6-digit hex string like "#ff0000".
type NameLookup interface {
	Lookup(name string) (hex string, ok bool)
}

// NameMap is a NameLookup backed by a plain map, handy for custom name tables.
type NameMap map[string]string

func (m NameMap) Lookup(name string) (string, bool) {
	hex, ok := m[name]
	return hex, ok
}

// svgNames looks names up in the SVG 1.1 / CSS named color table.
type svgNames struct{}

func (svgNames) Lookup(name string) (string, bool) {
	c, ok := colornames.Map[name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), true
}

// DefaultNames is the named color table used by the package-level functions.
var DefaultNames NameLookup = svgNames{}
