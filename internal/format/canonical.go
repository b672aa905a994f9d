package format

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/chromakit/internal/color"
	"github.com/zclconf/go-cty/cty"
)

// colorBlocks are the top-level blocks whose string literals are colors.
var colorBlocks = map[string]bool{"palette": true, "theme": true}

// Canonicalize rewrites every quoted color literal inside palette and theme
// blocks to its canonical hex form, then formats the result. Function calls,
// references and strings that do not parse as colors are left untouched.
//
// Unlike Format, it needs syntactically valid HCL.
func Canonicalize(content string) (string, error) {
	file, diags := hclwrite.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return "", fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	for _, block := range file.Body().Blocks() {
		if colorBlocks[block.Type()] {
			canonicalizeBody(block.Body())
		}
	}

	return Format(string(file.Bytes()))
}

func canonicalizeBody(body *hclwrite.Body) {
	for name, attr := range body.Attributes() {
		lit, ok := quotedLiteral(attr.Expr().BuildTokens(nil))
		if !ok {
			continue
		}
		c, err := color.ParseString(lit)
		if err != nil || c.Hex == lit {
			continue
		}
		body.SetAttributeValue(name, cty.StringVal(c.Hex))
	}
	for _, block := range body.Blocks() {
		canonicalizeBody(block.Body())
	}
}

// quotedLiteral reports whether tokens are exactly one plain quoted string.
func quotedLiteral(tokens hclwrite.Tokens) (string, bool) {
	if len(tokens) != 3 {
		return "", false
	}
	if tokens[0].Type != hclsyntax.TokenOQuote ||
		tokens[1].Type != hclsyntax.TokenQuotedLit ||
		tokens[2].Type != hclsyntax.TokenCQuote {
		return "", false
	}
	return string(tokens[1].Bytes), true
}
