package lsp

import (
	"strings"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color.Info to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Info) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: float32(c.A),
	}
}

// colorFromLSP converts a picker color back into a canonical record.
func colorFromLSP(c protocol.Color) (color.Info, error) {
	return color.Parse(color.Channels{
		Model: color.ModelRGB,
		Values: []float64{
			float64(c.Red) * 255,
			float64(c.Green) * 255,
			float64(c.Blue) * 255,
			float64(c.Alpha),
		},
	})
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// presentationForms lists the notations offered by the color picker.
// Opaque colors get hex, rgb and hsl; translucent ones get hex, rgba and hsla.
func presentationForms(c color.Info) []string {
	if c.A < 1 {
		return []string{c.Hex, c.RGBA, c.HSLA}
	}
	return []string{c.Hex, c.RGB, c.HSL}
}

// colorPresentation produces color presentation options for a given color and range.
// Quoted literals get a TextEdit per notation that replaces the old value.
// References and function calls return an empty slice so the picker never
// overwrites an expression with a literal.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"") {
		return []protocol.ColorPresentation{}
	}

	c, err := colorFromLSP(params.Color)
	if err != nil {
		return []protocol.ColorPresentation{}
	}

	forms := presentationForms(c)
	presentations := make([]protocol.ColorPresentation, 0, len(forms))
	for _, form := range forms {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: form,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + form + "\"",
			},
		})
	}
	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
