package theme

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/chromakit/internal/color"
	"github.com/zclconf/go-cty/cty"
)

// Theme is a fully-resolved palette file.
type Theme struct {
	Meta    Meta
	Palette *Node
	Theme   *Node
}

// Meta holds palette file metadata.
type Meta struct {
	Name       string `hcl:"name,optional"`
	Author     string `hcl:"author,optional"`
	Appearance string `hcl:"appearance,optional"`
	URL        string `hcl:"url,optional"`
}

// Node is one level of a color tree. A node may carry its own color, children, or both.
// Children keep the order they were added in.
type Node struct {
	Color    *color.Info
	Children map[string]*Node
	keys     []string
}

// Entry is a flattened node: a dotted name and its color.
type Entry struct {
	Name  string
	Color color.Info
}

// Set adds or replaces a child.
func (n *Node) Set(name string, child *Node) {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	if _, ok := n.Children[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.Children[name] = child
}

// SetColor adds a leaf child holding c.
func (n *Node) SetColor(name string, c color.Info) {
	n.Set(name, &Node{Color: &c})
}

// Keys returns the child names in insertion order.
func (n *Node) Keys() []string {
	return n.keys
}

// Get walks a dotted path such as "highlight.low".
func (n *Node) Get(path string) (*Node, bool) {
	cur := n
	for part := range strings.SplitSeq(path, ".") {
		if cur == nil || cur.Children == nil {
			return nil, false
		}
		next, ok := cur.Children[part]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Lookup returns the color at a dotted path. A group resolves to its own color if it has one.
func (n *Node) Lookup(path string) (color.Info, bool) {
	node, ok := n.Get(path)
	if !ok || node.Color == nil {
		return color.Info{}, false
	}
	return *node.Color, true
}

// Entries flattens the tree depth-first in insertion order.
// Nested names are joined with dots; a group's own color is listed under the group name.
func (n *Node) Entries() []Entry {
	var out []Entry
	n.collect("", &out)
	return out
}

func (n *Node) collect(prefix string, out *[]Entry) {
	if n.Color != nil && prefix != "" {
		*out = append(*out, Entry{Name: prefix, Color: *n.Color})
	}
	for _, k := range n.keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		n.Children[k].collect(name, out)
	}
}

// ResolveColor extracts a color string from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// NodeToCty converts a Node to a cty.Value for HCL evaluation context.
// Leaf nodes become their canonical hex string.
// Nodes with children become objects, with "color" as a sibling key if the node has its own color.
func NodeToCty(node *Node) cty.Value {
	if node == nil {
		return cty.EmptyObjectVal
	}
	if node.Children == nil {
		if node.Color != nil {
			return cty.StringVal(node.Color.Hex)
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)
	if node.Color != nil {
		vals["color"] = cty.StringVal(node.Color.Hex)
	}
	for _, k := range node.keys {
		vals[k] = NodeToCty(node.Children[k])
	}
	return cty.ObjectVal(vals)
}

// BuildEvalContext creates an HCL evaluation context with palette variables
// and the color function library.
func BuildEvalContext(palette *Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": NodeToCty(palette),
		},
		Functions: Functions(),
	}
}

// FunctionNames lists the functions BuildEvalContext provides, sorted.
func FunctionNames() []string {
	return slices.Sorted(maps.Keys(Functions()))
}
