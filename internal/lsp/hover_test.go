package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const hoverContent = `palette {
  base = "#191724"
  love = "rgba(235, 111, 146, 0.5)"
  soft = mix(palette.base, "white", 0.3)
}

theme {
  background = palette.base
}
`

func hoverMarkdown(t *testing.T, h *protocol.Hover) string {
	t.Helper()
	if h == nil {
		t.Fatal("expected non-nil hover result")
	}
	mc, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("expected MarkupContent, got %T", h.Contents)
	}
	if mc.Kind != protocol.MarkupKindMarkdown {
		t.Errorf("expected markdown kind, got %q", mc.Kind)
	}
	return mc.Value
}

func TestHover_PaletteReference(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	pos := positionOf(t, hoverContent, "palette.base\n}")
	pos.Character += 2 // somewhere inside "palette.base"

	h := hover(result, hoverContent, pos)
	md := hoverMarkdown(t, h)

	for _, want := range []string{
		"**palette.base**",
		"`#191724`",
		"`rgb(25,23,36)`",
		"brightness 0.10",
		"whiteness 0.09",
		"value 0.14",
		"blackness 0.86",
		"(dark)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("hover should contain %q, got:\n%s", want, md)
		}
	}

	if h.Range == nil || h.Range.Start.Line != 7 {
		t.Errorf("hover range = %+v, want line 7", h.Range)
	}
}

func TestHover_Literal(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	pos := positionOf(t, hoverContent, `"#191724"`)
	pos.Character += 3

	md := hoverMarkdown(t, hover(result, hoverContent, pos))

	if strings.Contains(md, "**") {
		t.Errorf("literal hover should not repeat the source text, got:\n%s", md)
	}
	if !strings.HasPrefix(md, "`#191724`") {
		t.Errorf("hover should start with the hex form, got:\n%s", md)
	}
}

func TestHover_TranslucentLiteral(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	pos := positionOf(t, hoverContent, `"rgba(`)
	pos.Character += 3

	md := hoverMarkdown(t, hover(result, hoverContent, pos))

	for _, want := range []string{"`#eb6f9280`", "`rgba(235,111,146,0.5)`", "hsla("} {
		if !strings.Contains(md, want) {
			t.Errorf("hover should contain %q, got:\n%s", want, md)
		}
	}
}

func TestHover_FunctionCallResult(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	// On the weight argument, inside the call but not on the function name
	pos := positionOf(t, hoverContent, "0.3)")

	md := hoverMarkdown(t, hover(result, hoverContent, pos))

	if !strings.Contains(md, `**mix(palette.base, "white", 0.3)**`) {
		t.Errorf("hover should show the expression, got:\n%s", md)
	}
	if !strings.Contains(md, "(light)") && !strings.Contains(md, "(dark)") {
		t.Errorf("hover should include metrics, got:\n%s", md)
	}
}

func TestHover_FunctionName(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	pos := positionOf(t, hoverContent, "mix(")
	pos.Character++

	h := hover(result, hoverContent, pos)
	md := hoverMarkdown(t, h)

	if !strings.Contains(md, "mix(base, other, options...)") {
		t.Errorf("hover should contain the signature, got:\n%s", md)
	}
	if !strings.Contains(md, "Blends a color") {
		t.Errorf("hover should contain the description, got:\n%s", md)
	}
	if h.Range.End.Character-h.Range.Start.Character != 3 {
		t.Errorf("hover range should cover the function name, got %+v", h.Range)
	}
}

func TestHover_NoColor(t *testing.T) {
	result := Analyze("test.hcl", hoverContent)

	// On the "palette" block keyword
	if h := hover(result, hoverContent, protocol.Position{Line: 0, Character: 2}); h != nil {
		t.Errorf("expected nil hover on block keyword, got %+v", h)
	}
	// Past the end of the document
	if h := hover(result, hoverContent, protocol.Position{Line: 99, Character: 0}); h != nil {
		t.Errorf("expected nil hover past the end, got %+v", h)
	}
}

func TestHover_NilResult(t *testing.T) {
	if h := hover(nil, hoverContent, protocol.Position{}); h != nil {
		t.Errorf("expected nil for nil result, got %+v", h)
	}
}

func TestPosInRange(t *testing.T) {
	rng := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 10},
	}

	tests := []struct {
		name string
		pos  protocol.Position
		want bool
	}{
		{"start is inclusive", protocol.Position{Line: 1, Character: 4}, true},
		{"inside", protocol.Position{Line: 1, Character: 7}, true},
		{"end is exclusive", protocol.Position{Line: 1, Character: 10}, false},
		{"before", protocol.Position{Line: 1, Character: 3}, false},
		{"other line", protocol.Position{Line: 2, Character: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := posInRange(tt.pos, rng); got != tt.want {
				t.Errorf("posInRange(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	content := "first line\nsecond line\nthird"

	tests := []struct {
		name string
		rng  protocol.Range
		want string
	}{
		{
			name: "single line",
			rng:  protocol.Range{Start: protocol.Position{Line: 1, Character: 0}, End: protocol.Position{Line: 1, Character: 6}},
			want: "second",
		},
		{
			name: "multi line",
			rng:  protocol.Range{Start: protocol.Position{Line: 0, Character: 6}, End: protocol.Position{Line: 2, Character: 3}},
			want: "line\nsecond line\nthi",
		},
		{
			name: "clamped end",
			rng:  protocol.Range{Start: protocol.Position{Line: 2, Character: 2}, End: protocol.Position{Line: 2, Character: 50}},
			want: "ird",
		},
		{
			name: "out of range",
			rng:  protocol.Range{Start: protocol.Position{Line: 9, Character: 0}, End: protocol.Position{Line: 9, Character: 1}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText(content, tt.rng); got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
