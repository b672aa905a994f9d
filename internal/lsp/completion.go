package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/chromakit/internal/theme"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty/function"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextPalette              // inside palette {} or one of its groups
	contextTheme                // inside theme {} or one of its groups
)

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "author", "appearance", "url"}

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "palette", "theme"}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Check for palette path completion: look for "palette." or "palette.xxx."
	if paletteItems := tryPaletteCompletion(result, textBeforeCursor); paletteItems != nil {
		return paletteItems
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	// Value positions in color blocks offer functions and the palette root
	if isValuePosition(textBeforeCursor) {
		if ctx == contextPalette || ctx == contextTheme {
			return valueCompletions()
		}
		return nil
	}

	switch ctx {
	case contextMeta:
		return metaCompletions(lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryPaletteCompletion checks if the text before the cursor ends with a palette
// path prefix (e.g., "palette." or "palette.highlight.") and returns completion
// items for the children at that node in the palette tree.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || result.Palette == nil {
		return nil
	}

	// Find the last occurrence of "palette." in the text before cursor
	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}

	// Extract the path after "palette."
	pathStr := textBeforeCursor[idx+len("palette."):]

	// Walk the palette tree based on the path segments.
	// - "palette."              -> children of root (segments = nil)
	// - "palette.highlight."    -> children of "highlight" node
	// - "palette.high"          -> children of root (client filters partial match)
	// - "palette.highlight.lo"  -> children of "highlight" (client filters "lo")
	var segments []string
	if before, ok := strings.CutSuffix(pathStr, "."); ok {
		segments = strings.Split(before, ".")
	} else if strings.Contains(pathStr, ".") {
		parts := strings.Split(pathStr, ".")
		segments = parts[:len(parts)-1]
	}

	node := result.Palette
	if len(segments) > 0 {
		child, ok := node.Get(strings.Join(segments, "."))
		if !ok {
			return nil
		}
		node = child
	}

	if node.Children == nil {
		return nil
	}

	return nodeChildrenToCompletionItems(node)
}

// nodeChildrenToCompletionItems converts a node's children into completion items,
// in definition order.
func nodeChildrenToCompletionItems(node *theme.Node) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(node.Children)+1)
	if node.Color != nil {
		items = append(items, colorItem("color", node.Color.Hex))
	}

	for _, name := range node.Keys() {
		child := node.Children[name]
		if child.Children == nil {
			if child.Color != nil {
				items = append(items, colorItem(name, child.Color.Hex))
			}
			continue
		}

		// It's a group; still offer it but with a different detail
		detail := "color group"
		if child.Color != nil {
			detail = "color group " + child.Color.Hex
		}
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   completionKindPtr(protocol.CompletionItemKindModule),
			Detail: &detail,
		})
	}

	return items
}

func colorItem(label, hex string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:  label,
		Kind:   completionKindPtr(protocol.CompletionItemKindColor),
		Detail: &hex,
	}
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// signature renders a function's parameter list, e.g. "mix(base, other, options...)".
func signature(name string, fn function.Function) string {
	var params []string
	for _, p := range fn.Params() {
		params = append(params, p.Name)
	}
	if vp := fn.VarParam(); vp != nil {
		params = append(params, vp.Name+"...")
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
}

// snippet renders a function call with one tab stop per fixed parameter.
func snippet(name string, fn function.Function) string {
	params := fn.Params()
	stops := make([]string, len(params))
	for i, p := range params {
		stops[i] = fmt.Sprintf("${%d:%s}", i+1, p.Name)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(stops, ", "))
}

// valueCompletions returns completion items for a value position: a snippet for
// every palette function and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	funcs := theme.Functions()

	items := make([]protocol.CompletionItem, 0, len(funcs)+1)
	for _, name := range theme.FunctionNames() {
		fn := funcs[name]
		insert := snippet(name, fn)
		doc := fn.Description()
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(signature(name, fn)),
			Documentation:    doc,
			InsertText:       &insert,
			InsertTextFormat: &snippetFormat,
		})
	}

	paletteSnippet := "palette."
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting. Groups nested
// in palette or theme report their top-level block.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[0] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	case "theme":
		return contextTheme
	default:
		return contextRoot
	}
}

// metaCompletions returns meta attribute completions, excluding names that are
// already defined in the block surrounding the cursor.
func metaCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range metaAttributes {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		insert := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &insert,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	items := complete(result, content, params.Position)
	return items, nil
}
