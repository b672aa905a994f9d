package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/theme"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chromakit.parser")

// PaletteBlock wraps a single palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no palette variable needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// ColorBlock wraps a block with arbitrary color attributes for gohcl decoding.
type ColorBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// ResolvedConfig decodes blocks that reference palette.
type ResolvedConfig struct {
	Meta   *theme.Meta `hcl:"meta,block"`
	Theme  *ColorBlock `hcl:"theme,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// Loader handles two-pass HCL decoding with palette resolution.
type Loader struct {
	body    hcl.Body
	ctx     *hcl.EvalContext
	palette *theme.Node
}

// NewLoader reads and parses a palette file and builds the evaluation context from its palette.
func NewLoader(path string) (*Loader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return NewSourceLoader(src, path)
}

// NewSourceLoader is NewLoader for content already in memory.
func NewSourceLoader(src []byte, filename string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette. Entries may only reference earlier entries.
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}

	palette := &theme.Node{}
	w := walker{
		ctx: func() *hcl.EvalContext { return theme.BuildEvalContext(palette) },
	}
	if err := w.walk(paletteBody, palette, "palette", false); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	return &Loader{
		body:    file.Body,
		ctx:     theme.BuildEvalContext(palette),
		palette: palette,
	}, nil
}

// Decode decodes a value using the palette context.
// Reusable for any blocks that reference palette values.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Palette returns the resolved palette tree.
func (l *Loader) Palette() *theme.Node {
	return l.palette
}

// Context returns the EvalContext for manual parsing.
func (l *Loader) Context() *hcl.EvalContext {
	return l.ctx
}

// Parse parses a palette file and returns a fully-resolved Theme.
func Parse(path string) (*theme.Theme, error) {
	loader, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.resolve()
}

// ParseSource is Parse for content already in memory.
func ParseSource(src []byte, filename string) (*theme.Theme, error) {
	loader, err := NewSourceLoader(src, filename)
	if err != nil {
		return nil, err
	}
	return loader.resolve()
}

func (l *Loader) resolve() (*theme.Theme, error) {
	// Second pass: decode blocks that reference palette
	var resolved ResolvedConfig
	if err := l.Decode(&resolved); err != nil {
		return nil, err
	}

	roles := &theme.Node{}
	if resolved.Theme != nil {
		body, ok := resolved.Theme.Entries.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("theme block is not an hclsyntax.Body")
		}
		w := walker{ctx: l.Context}
		if err := w.walk(body, roles, "theme", false); err != nil {
			return nil, fmt.Errorf("parsing theme: %w", err)
		}
	}

	meta := theme.Meta{}
	if resolved.Meta != nil {
		meta = *resolved.Meta
	}

	log.Infof("loaded %q: %d palette colors, %d theme colors",
		meta.Name, len(l.palette.Entries()), len(roles.Entries()))

	return &theme.Theme{
		Meta:    meta,
		Palette: l.palette,
		Theme:   roles,
	}, nil
}

// walker resolves a block body into a color tree.
// ctx is called before every attribute so entries can see what was resolved before them.
type walker struct {
	ctx func() *hcl.EvalContext
}

// bodyItem represents an attribute or block in source order.
type bodyItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func sourceOrder(body *hclsyntax.Body) []bodyItem {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, bodyItem{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, bodyItem{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})
	return items
}

// walk handles:
// - direct color attributes: key = "#hex", key = mix(...), key = palette.other
// - nested groups: key { sub = ... }, whose "color" attribute is the group's own color
func (w walker) walk(body *hclsyntax.Body, node *theme.Node, prefix string, nested bool) error {
	for _, item := range sourceOrder(body) {
		if item.block != nil {
			if len(item.block.Labels) > 0 {
				return fmt.Errorf("%s.%s: groups take no labels", prefix, item.block.Type)
			}
			child := &theme.Node{}
			node.Set(item.block.Type, child)
			if err := w.walk(item.block.Body, child, prefix+"."+item.block.Type, true); err != nil {
				return err
			}
			continue
		}

		name := item.attr.Name
		symbol := prefix + "." + name
		c, err := w.evalColor(item.attr, symbol)
		if err != nil {
			return err
		}
		log.Debugf("%s = %s", symbol, c.Hex)

		// At the top level "color" is an ordinary entry; inside a group it colors the group.
		if name == "color" && nested {
			node.Color = &c
			continue
		}
		node.SetColor(name, c)
	}
	return nil
}

func (w walker) evalColor(attr *hclsyntax.Attribute, symbol string) (color.Info, error) {
	val, diags := attr.Expr.Value(w.ctx())
	if diags.HasErrors() {
		return color.Info{}, fmt.Errorf("evaluating %s: %s", symbol, diags.Error())
	}
	s, err := theme.ResolveColor(val)
	if err != nil {
		return color.Info{}, fmt.Errorf("%s: %w", symbol, err)
	}
	c, err := color.ParseString(s)
	if err != nil {
		return color.Info{}, fmt.Errorf("%s: %w", symbol, err)
	}
	return c, nil
}
