// Package ui describes the dashboard page as an immutable node tree.
package ui

import (
	"sort"
	"strings"

	"nyc_rent_dashboard/internal/charts"
)

type Kind string

const (
	KindDiv      Kind = "div"
	KindH1       Kind = "h1"
	KindH3       Kind = "h3"
	KindText     Kind = "text"
	KindDropdown Kind = "dropdown"
	KindGraph    Kind = "graph"
)

type Style map[string]string

// CSS renders the style as an inline declaration list with stable ordering.
func (s Style) CSS() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Node is one element of the layout. Builders copy their inputs, so a
// finished tree shares no slices or maps with the caller.
type Node struct {
	Kind     Kind           `json:"kind"`
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text,omitempty"`
	Style    Style          `json:"style,omitempty"`
	Children []Node         `json:"children,omitempty"`
	Options  []Option       `json:"options,omitempty"`
	Multi    bool           `json:"multi,omitempty"`
	Value    []string       `json:"value,omitempty"`
	Figure   *charts.Figure `json:"figure,omitempty"`
}

func Div(style Style, children ...Node) Node {
	return Node{Kind: KindDiv, Style: copyStyle(style), Children: append([]Node(nil), children...)}
}

func H1(text string, style Style) Node {
	return Node{Kind: KindH1, Text: text, Style: copyStyle(style)}
}

func H3(text string, style Style) Node {
	return Node{Kind: KindH3, Text: text, Style: copyStyle(style)}
}

func Text(text string) Node { return Node{Kind: KindText, Text: text} }

// Dropdown offers values as options labelled by themselves.
func Dropdown(id string, values []string, multi bool, selected []string, style Style) Node {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return Node{
		Kind:    KindDropdown,
		ID:      id,
		Options: opts,
		Multi:   multi,
		Value:   append([]string(nil), selected...),
		Style:   copyStyle(style),
	}
}

// Graph is a chart slot; fig is nil for slots filled by callbacks.
func Graph(id string, fig *charts.Figure) Node {
	return Node{Kind: KindGraph, ID: id, Figure: fig}
}

// Walk visits n and its descendants depth-first.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node with the given id.
func (n Node) Find(id string) (Node, bool) {
	var (
		out   Node
		found bool
	)
	n.Walk(func(c Node) {
		if !found && c.ID == id {
			out, found = c, true
		}
	})
	return out, found
}

// IDs lists the ids of all nodes of the given kind.
func (n Node) IDs(k Kind) []string {
	var out []string
	n.Walk(func(c Node) {
		if c.Kind == k && c.ID != "" {
			out = append(out, c.ID)
		}
	})
	return out
}

func copyStyle(s Style) Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
