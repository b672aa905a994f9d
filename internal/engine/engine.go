package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/jsvensson/chromakit/internal/theme"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chromakit.engine")

// Engine loads and executes Go templates against a resolved Theme.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given theme data, and writes output files.
func (e *Engine) Run(t *theme.Theme) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(t)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	log.Infof("wrote %s", outPath)
	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta           theme.Meta
	Palette        map[string]color.Info // dotted names, e.g. "highlight.low"
	Theme          map[string]color.Info
	PaletteEntries []theme.Entry // source order
	ThemeEntries   []theme.Entry
	FuncMap        template.FuncMap
}

func flatten(entries []theme.Entry) map[string]color.Info {
	m := make(map[string]color.Info, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Color
	}
	return m
}

// resolveColorPath resolves a dot-notation path to a color.
// "palette.x" and "theme.x" address a block explicitly; a bare name is looked up
// in the palette and then the theme.
func resolveColorPath(path string, data templateData) (color.Info, bool) {
	block, rest, found := strings.Cut(path, ".")
	if found {
		switch block {
		case "palette":
			c, ok := data.Palette[rest]
			return c, ok
		case "theme":
			c, ok := data.Theme[rest]
			return c, ok
		}
	}
	if c, ok := data.Palette[path]; ok {
		return c, true
	}
	c, ok := data.Theme[path]
	return c, ok
}

// toInfo accepts a color record, a palette/theme path, or anything the color engine parses.
func toInfo(v any, data templateData) (color.Info, error) {
	if s, ok := v.(string); ok {
		if c, ok := resolveColorPath(s, data); ok {
			return c, nil
		}
	}
	c, err := color.Parse(v)
	if err != nil {
		return color.Info{}, fmt.Errorf("resolving %v: %w", v, err)
	}
	return c, nil
}

func buildTemplateData(t *theme.Theme) templateData {
	data := templateData{
		Meta:           t.Meta,
		PaletteEntries: t.Palette.Entries(),
	}
	if t.Theme != nil {
		data.ThemeEntries = t.Theme.Entries()
	}
	data.Palette = flatten(data.PaletteEntries)
	data.Theme = flatten(data.ThemeEntries)

	str := func(form func(color.Info) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := toInfo(v, data)
			if err != nil {
				return "", err
			}
			return form(c), nil
		}
	}
	adjust := func(fn func(color.Source, float64) (color.Info, error)) func(float64, any) (color.Info, error) {
		return func(per float64, v any) (color.Info, error) {
			c, err := toInfo(v, data)
			if err != nil {
				return color.Info{}, err
			}
			return fn(c, per)
		}
	}

	data.FuncMap = template.FuncMap{
		"hex":   str(func(c color.Info) string { return c.Hex }),
		"bhex":  str(func(c color.Info) string { return strings.TrimPrefix(c.Hex, "#") }),
		"hexa":  str(hexWithAlpha),
		"bhexa": str(func(c color.Info) string { return strings.TrimPrefix(hexWithAlpha(c), "#") }),
		"rgb":   str(func(c color.Info) string { return c.RGB }),
		"rgba":  str(func(c color.Info) string { return c.RGBA }),
		"hsl":   str(func(c color.Info) string { return c.HSL }),
		"hsla":  str(func(c color.Info) string { return c.HSLA }),
		"color": func(v any) (color.Info, error) {
			return toInfo(v, data)
		},
		"mix": func(base, other any, args ...any) (color.Info, error) {
			a, err := toInfo(base, data)
			if err != nil {
				return color.Info{}, err
			}
			b, err := toInfo(other, data)
			if err != nil {
				return color.Info{}, err
			}
			opts, err := mixOptions(args)
			if err != nil {
				return color.Info{}, err
			}
			return color.Mix(a, b, opts...)
		},
		"lighten":    adjust(color.Lighten),
		"darken":     adjust(color.Darken),
		"saturate":   adjust(color.Saturate),
		"desaturate": adjust(color.Desaturate),
		"brightness": func(v any) (float64, error) {
			c, err := toInfo(v, data)
			return c.Brightness(), err
		},
		"alpha": func(v any) (float64, error) {
			c, err := toInfo(v, data)
			return c.A, err
		},
		"dark": func(v any) (bool, error) {
			c, err := toInfo(v, data)
			return c.IsDark(), err
		},
	}

	return data
}

// mixOptions reads the optional weight and model arguments of the template mix.
func mixOptions(args []any) ([]color.MixOption, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("mix takes at most 4 arguments, got %d", len(args)+2)
	}

	var opts []color.MixOption
	if len(args) > 0 {
		var weight float64
		switch w := args[0].(type) {
		case float64:
			weight = w
		case int:
			weight = float64(w)
		default:
			return nil, fmt.Errorf("mix weight must be a number, got %T", args[0])
		}
		opts = append(opts, color.WithWeight(weight))
	}
	if len(args) > 1 {
		name, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("mix model must be a string, got %T", args[1])
		}
		m := color.Model(strings.ToLower(name))
		if m != color.ModelRGB && m != color.ModelHSL {
			return nil, fmt.Errorf("unknown mix model %q (valid: rgb, hsl)", name)
		}
		opts = append(opts, color.WithModel(m))
	}
	return opts, nil
}

// hexWithAlpha always includes the alpha byte, e.g. "#191724ff".
func hexWithAlpha(c color.Info) string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
