package lsp

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// referenceBlocks are the roots an expression can reference.
var referenceBlocks = map[string]bool{"palette": true}

// blockRefAtCursor extracts the block reference path up to the cursor position.
// For example, if cursor is on "palette" in "palette.base", it returns "palette".
// If cursor is on "base" in "palette.base", it returns "palette.base".
// Returns "" if the cursor is not on a block reference.
func blockRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	// Find the end of the current word (letters, digits, underscores, dots)
	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}

	// Find the start of the current word (letters, digits, underscores, dots)
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	word := line[start:end]

	parts := strings.Split(word, ".")
	if !referenceBlocks[parts[0]] {
		return ""
	}

	// If cursor is on just the block name, check if followed by dot
	if len(parts) == 1 && word == parts[0] {
		if end < len(line) && line[end] == '.' {
			return parts[0]
		}
		return ""
	}

	// Calculate cursor position within word and return path up to cursor
	cursorInWord := col - start
	var resultParts []string
	currentPos := 0

	for _, part := range parts {
		partEnd := currentPos + len(part)
		if currentPos <= cursorInWord {
			resultParts = append(resultParts, part)
		}
		currentPos = partEnd + 1 // +1 for dot
	}

	return strings.Join(resultParts, ".")
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

// refAtPosition returns the palette path under pos, or "".
func refAtPosition(content string, pos protocol.Position) string {
	lines := strings.Split(content, "\n")
	lineIdx := int(pos.Line)
	if lineIdx >= len(lines) {
		return ""
	}
	return blockRefAtCursor(lines[lineIdx], pos.Character)
}

// definition returns where the palette entry under the cursor is declared,
// or nil if the cursor is not on a palette reference or the entry is unknown.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	ref := refAtPosition(content, pos)
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// references lists every expression that reads the palette entry under the cursor.
// A reference to a group also matches references into it, so palette.highlight
// finds palette.highlight.low. The declaration comes first when includeDecl is set.
func references(result *AnalysisResult, content string, uri string, pos protocol.Position, includeDecl bool) []protocol.Location {
	if result == nil {
		return nil
	}

	ref := refAtPosition(content, pos)
	if ref == "" {
		return nil
	}

	var locs []protocol.Location
	if includeDecl {
		if r, ok := result.Symbols[ref]; ok {
			locs = append(locs, protocol.Location{URI: protocol.DocumentUri(uri), Range: r})
		}
	}

	// Parse errors still leave a partial body worth searching.
	file, _ := hclsyntax.ParseConfig([]byte(content), uri, hcl.InitialPos)
	if file == nil {
		return locs
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return locs
	}

	decls := len(locs)
	hclsyntax.VisitAll(body, func(node hclsyntax.Node) hcl.Diagnostics {
		expr, ok := node.(*hclsyntax.ScopeTraversalExpr)
		if !ok {
			return nil
		}
		path := traversalPath(expr.Traversal)
		if path == ref || strings.HasPrefix(path, ref+".") {
			locs = append(locs, protocol.Location{
				URI:   protocol.DocumentUri(uri),
				Range: hclRangeToLSP(expr.SrcRange),
			})
		}
		return nil
	})

	// Attributes are visited in map order.
	slices.SortFunc(locs[decls:], func(a, b protocol.Location) int {
		if a.Range.Start.Line != b.Range.Start.Line {
			return cmp.Compare(a.Range.Start.Line, b.Range.Start.Line)
		}
		return cmp.Compare(a.Range.Start.Character, b.Range.Start.Character)
	})
	return locs
}

// traversalPath renders the attribute steps of t as a dotted path, stopping at the first index step.
func traversalPath(t hcl.Traversal) string {
	parts := []string{t.RootName()}
	for _, step := range t[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			break
		}
		parts = append(parts, attr.Name)
	}
	return strings.Join(parts, ".")
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}

func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	content, ok := s.docs.Get(uri)
	if result == nil || !ok {
		return nil, nil
	}

	return references(result, content, uri, params.Position, params.Context.IncludeDeclaration), nil
}
