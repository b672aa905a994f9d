package lsp

import (
	"slices"
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// themeForCompletion is a valid palette file used to produce an AnalysisResult
// for completion tests.
const themeForCompletion = `
meta {
  name       = "Test Theme"
  author     = "Test Author"
  appearance = "dark"
}

palette {
  base    = "#191724"
  surface = "#1f1d2e"
  love    = "#eb6f92"

  highlight {
    color = "#524f67"
    low   = "#21202e"
    high  = "#6e6a86"
  }

  muted {
    low = "#6e6a86"
  }
}

theme {
  background = palette.base
  foreground = palette.surface
}
`

func completionLabels(items []protocol.CompletionItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func findItem(items []protocol.CompletionItem, label string) (protocol.CompletionItem, bool) {
	for _, item := range items {
		if item.Label == label {
			return item, true
		}
	}
	return protocol.CompletionItem{}, false
}

// completeAt runs completion with the cursor at the end of the given line.
func completeAt(t *testing.T, content string, line int) []protocol.CompletionItem {
	t.Helper()
	result := Analyze("test.hcl", themeForCompletion)
	lines := strings.Split(content, "\n")
	pos := protocol.Position{Line: uint32(line), Character: uint32(len(lines[line]))}
	return complete(result, content, pos)
}

func TestComplete_PaletteRoot(t *testing.T) {
	content := "theme {\n  cursor = palette.\n}\n"

	items := completeAt(t, content, 1)

	want := []string{"base", "surface", "love", "highlight", "muted"}
	if got := completionLabels(items); !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	base, _ := findItem(items, "base")
	if base.Detail == nil || *base.Detail != "#191724" {
		t.Errorf("base detail = %v, want #191724", base.Detail)
	}
	if *base.Kind != protocol.CompletionItemKindColor {
		t.Errorf("base kind = %v, want color", *base.Kind)
	}

	group, _ := findItem(items, "highlight")
	if *group.Kind != protocol.CompletionItemKindModule {
		t.Errorf("highlight kind = %v, want module", *group.Kind)
	}
	if group.Detail == nil || *group.Detail != "color group #524f67" {
		t.Errorf("highlight detail = %v", group.Detail)
	}

	muted, _ := findItem(items, "muted")
	if muted.Detail == nil || *muted.Detail != "color group" {
		t.Errorf("muted detail = %v", muted.Detail)
	}
}

func TestComplete_PalettePartial(t *testing.T) {
	content := "theme {\n  cursor = palette.lo\n}\n"

	items := completeAt(t, content, 1)
	if len(items) != 5 {
		t.Errorf("expected all 5 root entries for client-side filtering, got %v", completionLabels(items))
	}
}

func TestComplete_PaletteNested(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"group with color", "  cursor = palette.highlight.", []string{"color", "low", "high"}},
		{"group partial", "  cursor = palette.highlight.h", []string{"color", "low", "high"}},
		{"group without color", "  cursor = palette.muted.", []string{"low"}},
		{"inside function call", "  cursor = mix(palette.highlight.", []string{"color", "low", "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "theme {\n" + tt.line + "\n}\n"
			items := completeAt(t, content, 1)
			if got := completionLabels(items); !slices.Equal(got, tt.want) {
				t.Errorf("labels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplete_PaletteUnknownPath(t *testing.T) {
	content := "theme {\n  cursor = palette.nothing.\n}\n"
	if items := completeAt(t, content, 1); items != nil {
		t.Errorf("expected nil for unknown path, got %v", completionLabels(items))
	}

	// A leaf has no children to offer
	content = "theme {\n  cursor = palette.base.\n}\n"
	if items := completeAt(t, content, 1); items != nil {
		t.Errorf("expected nil for leaf, got %v", completionLabels(items))
	}
}

func TestComplete_ValuePosition(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"theme", "theme {\n  cursor = \n}\n", 1},
		{"palette", "palette {\n  soft = \n}\n", 1},
		{"palette group", "palette {\n  group {\n    low = \n  }\n}\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := completeAt(t, tt.content, tt.line)
			for _, name := range []string{"mix", "lighten", "darken", "saturate", "desaturate", "hex", "rgb", "hsl", "palette"} {
				if _, ok := findItem(items, name); !ok {
					t.Errorf("missing %q in %v", name, completionLabels(items))
				}
			}
		})
	}
}

func TestComplete_FunctionSnippet(t *testing.T) {
	items := completeAt(t, "theme {\n  cursor = \n}\n", 1)

	mix, ok := findItem(items, "mix")
	if !ok {
		t.Fatal("missing mix")
	}
	if mix.InsertText == nil || *mix.InsertText != "mix(${1:base}, ${2:other})" {
		t.Errorf("mix insert text = %v", mix.InsertText)
	}
	if mix.Detail == nil || *mix.Detail != "mix(base, other, options...)" {
		t.Errorf("mix detail = %v", mix.Detail)
	}
	if *mix.InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Errorf("mix should be a snippet")
	}

	lighten, _ := findItem(items, "lighten")
	if lighten.InsertText == nil || *lighten.InsertText != "lighten(${1:color}, ${2:percentage})" {
		t.Errorf("lighten insert text = %v", lighten.InsertText)
	}

	rgba, _ := findItem(items, "rgba")
	if rgba.InsertText == nil || *rgba.InsertText != "rgba(${1:r}, ${2:g}, ${3:b}, ${4:a})" {
		t.Errorf("rgba insert text = %v", rgba.InsertText)
	}
}

func TestComplete_ValueInMeta(t *testing.T) {
	if items := completeAt(t, "meta {\n  name = \n}\n", 1); items != nil {
		t.Errorf("expected no completions for meta values, got %v", completionLabels(items))
	}
}

func TestComplete_MetaAttributes(t *testing.T) {
	content := "meta {\n  name = \"x\"\n  \n}\n"

	items := completeAt(t, content, 2)

	want := []string{"author", "appearance", "url"}
	if got := completionLabels(items); !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestComplete_TopLevel(t *testing.T) {
	content := "palette {\n  base = \"#000000\"\n}\n\n"

	items := completeAt(t, content, 3)

	want := []string{"meta", "palette", "theme"}
	if got := completionLabels(items); !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if items[0].InsertText == nil || *items[0].InsertText != "meta {\n  $0\n}" {
		t.Errorf("meta snippet = %v", items[0].InsertText)
	}
}

func TestComplete_InsideColorBlockName(t *testing.T) {
	// Attribute names inside palette and theme are free-form
	if items := completeAt(t, "palette {\n  \n}\n", 1); items != nil {
		t.Errorf("expected nil, got %v", completionLabels(items))
	}
}

func TestComplete_NilResult(t *testing.T) {
	content := "theme {\n  cursor = palette.\n}\n"
	pos := protocol.Position{Line: 1, Character: 19}

	// Without a result there is no palette to walk
	items := complete(nil, content, pos)
	if _, ok := findItem(items, "palette"); ok {
		t.Error("palette path completion should not run without a result")
	}
}

func TestDetermineBlockContext(t *testing.T) {
	lines := strings.Split(`meta {
  name = "x"
}

palette {
  group {
    low = "#000000"
  }
}

theme {
  panel {
    border = "#ffffff"
  }
}
`, "\n")

	tests := []struct {
		line int
		want blockContext
	}{
		{1, contextMeta},
		{3, contextRoot},
		{5, contextPalette},
		{6, contextPalette},
		{8, contextRoot},
		{12, contextTheme},
		{15, contextRoot},
	}

	for _, tt := range tests {
		if got := determineBlockContext(lines, tt.line); got != tt.want {
			t.Errorf("line %d: context = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestFindDefinedAttributes(t *testing.T) {
	lines := strings.Split(`meta {
  name   = "x"
  author = "y"

}`, "\n")

	defined := findDefinedAttributes(lines, 3)
	if !defined["name"] || !defined["author"] {
		t.Errorf("defined = %v, want name and author", defined)
	}
	if defined["url"] {
		t.Error("url should not be defined")
	}
}
