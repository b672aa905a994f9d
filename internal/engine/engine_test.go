package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/theme"
)

func mustColor(t *testing.T, s string) color.Info {
	t.Helper()
	c, err := color.ParseString(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return c
}

func testTheme(t *testing.T) *theme.Theme {
	t.Helper()
	palette := &theme.Node{}
	palette.SetColor("base", mustColor(t, "#191724"))
	palette.SetColor("love", mustColor(t, "#eb6f92"))
	highlight := &theme.Node{}
	highlight.SetColor("low", mustColor(t, "#21202e"))
	highlight.SetColor("high", mustColor(t, "#524f67"))
	palette.Set("highlight", highlight)
	palette.SetColor("overlay", mustColor(t, "#26233a80"))

	roles := &theme.Node{}
	roles.SetColor("background", mustColor(t, "#191724"))
	roles.SetColor("cursor", mustColor(t, "#eb6f92"))

	return &theme.Theme{
		Meta: theme.Meta{
			Name:       "Test Theme",
			Author:     "Tester",
			Appearance: "dark",
		},
		Palette: palette,
		Theme:   roles,
	}
}

func setupTemplateDir(t *testing.T, templates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// render runs a single template and returns its output.
func render(t *testing.T, tmpl string) string {
	t.Helper()
	tmplDir := setupTemplateDir(t, map[string]string{"test.txt.tmpl": tmpl})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}
	if err := e.Run(testTheme(t)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "test.txt"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(content)
}

func TestRun(t *testing.T) {
	got := render(t, `name={{ .Meta.Name }}
bg={{ hex .Theme.background }}
cursor={{ bhex .Theme.cursor }}`)

	wantLines := []string{
		"name=Test Theme",
		"bg=#191724",
		"cursor=eb6f92",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRunAppFilter(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"app1.txt.tmpl": "app1={{ .Meta.Name }}",
		"app2.txt.tmpl": "app2={{ .Meta.Name }}",
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
		Apps:         []string{"app1.txt"},
	}

	if err := e.Run(testTheme(t)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "app1.txt")); err != nil {
		t.Error("app1.txt should exist")
	}
	if _, err := os.Stat(filepath.Join(outDir, "app2.txt")); err == nil {
		t.Error("app2.txt should not exist when filtered")
	}
}

func TestRunNoTemplates(t *testing.T) {
	e := &Engine{
		TemplatesDir: t.TempDir(),
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}
	if err := e.Run(testTheme(t)); err == nil {
		t.Error("expected error for empty templates dir")
	}
}

func TestRunTemplateError(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"test.txt.tmpl": `{{ hex "no-such-color" }}`,
	})
	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    filepath.Join(t.TempDir(), "output"),
	}
	err := e.Run(testTheme(t))
	if err == nil {
		t.Fatal("expected error for unresolvable color")
	}
	if !strings.Contains(err.Error(), "unrecognized color format") {
		t.Errorf("error = %v, want the engine's parse error", err)
	}
}

func TestTemplateMixErrors(t *testing.T) {
	tests := map[string]string{
		`{{ mix "#000" "#fff" 0.5 "lab" }}`:     "unknown mix model",
		`{{ mix "#000" "#fff" "heavy" }}`:       "mix weight must be a number",
		`{{ mix "#000" "#fff" 0.5 1 }}`:         "mix model must be a string",
		`{{ mix "#000" "#fff" 0.5 "rgb" "x" }}`: "at most 4 arguments",
	}

	for tmpl, want := range tests {
		tmplDir := setupTemplateDir(t, map[string]string{"test.txt.tmpl": tmpl})
		e := &Engine{
			TemplatesDir: tmplDir,
			OutputDir:    filepath.Join(t.TempDir(), "output"),
		}
		err := e.Run(testTheme(t))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: error = %v, want %q", tmpl, err, want)
		}
	}
}

func TestTemplateFunctions(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"hex with bare name", `{{ hex "base" }}`, "#191724"},
		{"hex with nested name", `{{ hex "highlight.low" }}`, "#21202e"},
		{"hex with palette path", `{{ hex "palette.highlight.high" }}`, "#524f67"},
		{"hex with theme path", `{{ hex "theme.cursor" }}`, "#eb6f92"},
		{"hex with literal", `{{ hex "rgb(255, 0, 153)" }}`, "#ff0099"},
		{"hex with alpha", `{{ hex "overlay" }}`, "#26233a80"},
		{"bhex", `{{ bhex "base" }}`, "191724"},
		{"hexa", `{{ hexa "base" }}`, "#191724ff"},
		{"bhexa", `{{ bhexa "overlay" }}`, "26233a80"},
		{"rgb", `{{ rgb "base" }}`, "rgb(25,23,36)"},
		{"rgba", `{{ rgba "overlay" }}`, "rgba(38,35,58,0.502)"},
		{"hsl", `{{ hsl "hsl(270, 60%, 50%)" }}`, "hsl(270,60%,50%)"},
		{"hsla", `{{ hsla "#000" }}`, "hsla(0,0%,0%,1)"},
		{"map access", `{{ hex (index .Palette "highlight.low") }}`, "#21202e"},
		{"color func", `{{ (color "love").R }}`, "235"},
		{"mix", `{{ mix "#000000" "#ffffff" | hex }}`, "#808080"},
		{"mix weight", `{{ mix "#000000" "#ffffff" 0.25 | hex }}`, "#404040"},
		{"mix integer weight", `{{ mix "#000000" "#ffffff" 1 | hex }}`, "#ffffff"},
		{"mix rgb model", `{{ mix "#ff0000" "#0000ff" 0.5 "rgb" | hex }}`, "#800080"},
		{"mix hsl model", `{{ mix "#ff0000" "#0000ff" 0.5 "hsl" | hex }}`, "#00ff00"},
		{"lighten pipeline", `{{ "#808080" | lighten 0.1 | hex }}`, "#9a9a9a"},
		{"darken", `{{ darken 0.1 "#808080" | hex }}`, "#676767"},
		{"saturate", `{{ saturate 0.2 "hsl(0, 50%, 50%)" | hex }}`, "#d92626"},
		{"desaturate", `{{ desaturate 1 "hsl(0, 50%, 50%)" | hex }}`, "#808080"},
		{"brightness", `{{ brightness "white" }}`, "1"},
		{"alpha", `{{ alpha "overlay" | printf "%.2f" }}`, "0.50"},
		{"dark", `{{ dark "base" }} {{ dark "white" }}`, "true false"},
		{"entries", `{{ range .PaletteEntries }}{{ .Name }} {{ end }}`, "base love highlight.low highlight.high overlay "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.template); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSSVariables(t *testing.T) {
	got := CSSVariables(testTheme(t), "rp")
	want := `:root {
  --rp-base: #191724;
  --rp-base-rgb: 25, 23, 36;
  --rp-highlight-high: #524f67;
  --rp-highlight-high-rgb: 82, 79, 103;
  --rp-highlight-low: #21202e;
  --rp-highlight-low-rgb: 33, 32, 46;
  --rp-love: #eb6f92;
  --rp-love-rgb: 235, 111, 146;
  --rp-overlay: #26233a80;
  --rp-overlay-rgb: 38, 35, 58;
  --rp-theme-background: #191724;
  --rp-theme-background-rgb: 25, 23, 36;
  --rp-theme-cursor: #eb6f92;
  --rp-theme-cursor-rgb: 235, 111, 146;
}
`
	if got != want {
		t.Errorf("CSSVariables mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSSVariables_NoPrefix(t *testing.T) {
	got := CSSVariables(testTheme(t), "")
	if !strings.Contains(got, "  --base: #191724;\n") {
		t.Errorf("unprefixed output missing --base:\n%s", got)
	}
	if !strings.Contains(got, "  --theme-cursor: #eb6f92;\n") {
		t.Errorf("unprefixed output missing --theme-cursor:\n%s", got)
	}
}

func TestWriteCSS(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	e := &Engine{OutputDir: outDir}
	if err := e.WriteCSS(testTheme(t), "palette.css", "rp"); err != nil {
		t.Fatalf("WriteCSS() error: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(outDir, "palette.css"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), ":root {\n") {
		t.Errorf("unexpected css:\n%s", content)
	}
}
