package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/theme"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := min(int(r.Start.Character), len(line))
		endChar := min(int(r.End.Character), len(line))
		if endChar < startChar {
			return ""
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		switch i {
		case startLine:
			parts = append(parts, line[min(int(r.Start.Character), len(line)):])
		case endLine:
			parts = append(parts, line[:min(int(r.End.Character), len(line))])
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// colorMarkdown renders every notation of c followed by its metrics.
func colorMarkdown(c color.Info) string {
	m := c.Metrics()
	tone := "light"
	if c.IsDark() {
		tone = "dark"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "`%s` · `%s` · `%s`", c.Hex, rgbForm(c), hslForm(c))
	fmt.Fprintf(&b, "\n\nbrightness %.2f · whiteness %.2f · value %.2f · blackness %.2f (%s)",
		m.Brightness, m.Whiteness, m.Value, m.Blackness, tone)
	return b.String()
}

func rgbForm(c color.Info) string {
	if c.A < 1 {
		return c.RGBA
	}
	return c.RGB
}

func hslForm(c color.Info) string {
	if c.A < 1 {
		return c.HSLA
	}
	return c.HSL
}

// hover produces a Hover response for the given cursor position.
// Over a resolved color it shows the color in every notation plus its metrics;
// for anything other than a plain literal the source expression is shown as a heading.
// Over a function name it shows the function's signature and description.
// Returns nil if there is nothing to show at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	if h := functionHover(content, pos); h != nil {
		return h
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		md := colorMarkdown(cl.Color)
		if sourceText := extractText(content, cl.Range); !strings.HasPrefix(sourceText, "\"") {
			md = fmt.Sprintf("**%s**\n\n%s", sourceText, md)
		}

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md,
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// functionHover documents the palette function whose name is under the cursor.
func functionHover(content string, pos protocol.Position) *protocol.Hover {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}
	line := lines[pos.Line]

	start, end := wordBounds(line, int(pos.Character))
	if start == end || end >= len(line) || line[end] != '(' {
		return nil
	}

	fn, ok := theme.Functions()[line[start:end]]
	if !ok {
		return nil
	}

	rng := protocol.Range{
		Start: protocol.Position{Line: pos.Line, Character: uint32(start)},
		End:   protocol.Position{Line: pos.Line, Character: uint32(end)},
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```\n%s\n```\n%s", signature(line[start:end], fn), fn.Description()),
		},
		Range: &rng,
	}
}

// wordBounds returns the identifier around col, without dots.
func wordBounds(line string, col int) (int, int) {
	if col > len(line) {
		return col, col
	}
	start, end := col, col
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	return start, end
}

func isWordChar(b byte) bool {
	return isIdentChar(b) && b != '.'
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
