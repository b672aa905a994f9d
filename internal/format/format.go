// Package format rewrites palette files into their canonical layout.
package format

import (
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

// layoutRules run in order on hclwrite output.
var layoutRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	// At most one blank line between items.
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	// No blank line just inside a block.
	{regexp.MustCompile(`\{\n\s*\n`), "{\n"},
	{regexp.MustCompile(`\n\s*\n(\s*\})`), "\n${1}"},
}

// hexLiteral matches a quoted hex color of 3, 4, 6 or 8 digits.
var hexLiteral = regexp.MustCompile(`"#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})"`)

// Format returns content laid out in HCL canonical style with blank lines
// collapsed and hex color literals lower-cased.
//
// It works on partial or invalid HCL, so it can run while the user is typing.
// Use Canonicalize to also rewrite non-hex color literals.
func Format(content string) (string, error) {
	out := string(hclwrite.Format([]byte(content)))
	for _, r := range layoutRules {
		out = r.pattern.ReplaceAllString(out, r.repl)
	}
	return hexLiteral.ReplaceAllStringFunc(out, strings.ToLower), nil
}
