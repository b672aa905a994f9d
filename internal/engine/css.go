package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jsvensson/chromakit/internal/theme"
)

// CSSVariables renders palette and theme colors as CSS custom properties on :root.
// Each color yields a hex property and an "-rgb" triple for use as rgb(var(--x-rgb) / 50%).
// Names are sorted; dots become dashes. Theme colors are placed under "theme-".
func CSSVariables(t *theme.Theme, prefix string) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	writeCSSEntries(&b, prefix, t.Palette.Entries())
	if t.Theme != nil {
		writeCSSEntries(&b, join(prefix, "theme"), t.Theme.Entries())
	}
	b.WriteString("}\n")
	return b.String()
}

func writeCSSEntries(b *strings.Builder, prefix string, entries []theme.Entry) {
	slices.SortFunc(entries, func(x, y theme.Entry) int {
		return strings.Compare(x.Name, y.Name)
	})
	for _, e := range entries {
		name := "--" + join(prefix, strings.ReplaceAll(e.Name, ".", "-"))
		fmt.Fprintf(b, "  %s: %s;\n", name, e.Color.Hex)
		fmt.Fprintf(b, "  %s-rgb: %d, %d, %d;\n", name, e.Color.R, e.Color.G, e.Color.B)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

// WriteCSS writes CSSVariables output to name inside the output directory.
func (e *Engine) WriteCSS(t *theme.Theme, name, prefix string) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(e.OutputDir, name)
	if err := os.WriteFile(outPath, []byte(CSSVariables(t, prefix)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	log.Infof("wrote %s", outPath)
	return nil
}
