package lsp

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/theme"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "chromakit"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

// AnalysisResult holds all information produced by analyzing a palette file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     *theme.Node
	Theme       *theme.Node
	Symbols     map[string]protocol.Range // "palette.base", "palette.highlight.low" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Info
	IsRef bool // true if this is a palette reference (not a literal or function call)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses HCL content from memory and produces diagnostics, a symbol table,
// and color locations. It collects ALL errors rather than short-circuiting on the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var paletteBody, themeBody *hclsyntax.Body
	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
			paletteBody = block.Body
			result.Symbols["palette"] = hclRangeToLSP(block.DefRange())
		case "theme":
			themeBody = block.Body
		case "meta":
			// meta is decoded by gohcl in the parser; nothing to resolve here
		default:
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block %q is ignored", block.Type))
		}
	}
	for name, attr := range body.Attributes {
		result.addWarning(attr.SrcRange, fmt.Sprintf("top-level attribute %q is ignored", name))
	}

	if paletteBody == nil {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required palette block")
		return result
	}

	// Palette entries are resolved in source order and may reference earlier ones.
	palette := &theme.Node{}
	pw := analyzer{
		result:  result,
		ctx:     func() *hcl.EvalContext { return theme.BuildEvalContext(palette) },
		symbols: true,
	}
	pw.walk(paletteBody, palette, "palette", false)
	result.Palette = palette

	roles := &theme.Node{}
	if themeBody != nil {
		ctx := theme.BuildEvalContext(palette)
		tw := analyzer{
			result: result,
			ctx:    func() *hcl.EvalContext { return ctx },
		}
		tw.walk(themeBody, roles, "theme", false)
	}
	result.Theme = roles

	return result
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagnosticSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
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

// analyzer walks a color block, recording diagnostics and color locations.
// Unlike the parser it keeps going after an error, so one bad entry does not
// hide problems further down the file.
type analyzer struct {
	result  *AnalysisResult
	ctx     func() *hcl.EvalContext
	symbols bool // record definitions for go-to-definition
}

func (a analyzer) walk(body *hclsyntax.Body, node *theme.Node, prefix string, nested bool) {
	for _, item := range sourceOrder(body) {
		if item.block != nil {
			block := item.block
			symbol := prefix + "." + block.Type
			if len(block.Labels) > 0 {
				a.result.addError(block.DefRange(), fmt.Sprintf("%s: groups take no labels", symbol))
				continue
			}
			if a.symbols {
				a.result.Symbols[symbol] = hclRangeToLSP(block.DefRange())
			}
			child := &theme.Node{}
			node.Set(block.Type, child)
			a.walk(block.Body, child, symbol, true)
			continue
		}

		attr := item.attr
		symbol := prefix + "." + attr.Name
		if a.symbols {
			a.result.Symbols[symbol] = hclRangeToLSP(attr.SrcRange)
		}

		c, ok := a.evalColor(attr, symbol)
		if !ok {
			continue
		}

		if attr.Name == "color" && nested {
			node.Color = &c
			continue
		}
		node.SetColor(attr.Name, c)
	}
}

func (a analyzer) evalColor(attr *hclsyntax.Attribute, symbol string) (color.Info, bool) {
	val, diags := attr.Expr.Value(a.ctx())
	if diags.HasErrors() {
		a.result.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", symbol, diags.Error()))
		return color.Info{}, false
	}

	s, err := theme.ResolveColor(val)
	if err != nil {
		a.result.addError(attr.SrcRange, fmt.Sprintf("%s: %s", symbol, err.Error()))
		return color.Info{}, false
	}

	c, err := color.ParseString(s)
	if err != nil {
		a.result.addError(attr.SrcRange, fmt.Sprintf("%s: %s", symbol, err.Error()))
		return color.Info{}, false
	}

	a.result.Colors = append(a.result.Colors, ColorLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
	return c, true
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.base) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
