package view

import (
	"strings"
)

// Node is an immutable description of a piece of page. Element nodes carry a
// Tag, text nodes only Text. The tree is plain data: it can be compared in
// tests, encoded to JSON for script driven pages, or rendered to HTML.
type Node struct {
	Tag      string `json:"tag,omitempty"`
	ID       string `json:"id,omitempty"`
	Class    string `json:"class,omitempty"`
	Text     string `json:"text,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
	Children []Node `json:"children,omitempty"`
}

type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func Element(tag string, children ...Node) Node {
	return Node{Tag: tag, Children: children}
}

func Text(text string) Node {
	return Node{Text: text}
}

// TextElement is an element holding a single text child.
func TextElement(tag, text string) Node {
	return Node{Tag: tag, Children: []Node{Text(text)}}
}

func (n Node) IsText() bool {
	return n.Tag == ""
}

func (n Node) WithID(id string) Node {
	n.ID = id
	return n
}

func (n Node) WithClass(class string) Node {
	n.Class = class
	return n
}

func (n Node) WithHidden(hidden bool) Node {
	n.Hidden = hidden
	return n
}

// WithAttr sets an attribute, replacing an existing one with the same key.
func (n Node) WithAttr(key, value string) Node {
	attrs := make([]Attr, 0, len(n.Attrs)+1)
	replaced := false
	for _, a := range n.Attrs {
		if a.Key == key {
			a.Value = value
			replaced = true
		}
		attrs = append(attrs, a)
	}
	if !replaced {
		attrs = append(attrs, Attr{Key: key, Value: value})
	}
	n.Attrs = attrs
	return n
}

func (n Node) WithChildren(children ...Node) Node {
	n.Children = append(append([]Node{}, n.Children...), children...)
	return n
}

func (n Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// TextContent concatenates the text of n and all its descendants, in document order.
func (n Node) TextContent() string {
	sb := strings.Builder{}
	n.Walk(func(node Node) bool {
		sb.WriteString(node.Text)
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants depth first. Returning false from visit
// skips the children of the visited node.
func (n Node) Walk(visit func(node Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindByID returns the first node in the tree with the given id.
func (n Node) FindByID(id string) (Node, bool) {
	var found *Node
	n.Walk(func(node Node) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = &node
			return false
		}
		return true
	})
	if found == nil {
		return Node{}, false
	}
	return *found, true
}

// FindAllByClass returns every node carrying class among its space separated classes.
func (n Node) FindAllByClass(class string) []Node {
	var nodes []Node
	n.Walk(func(node Node) bool {
		for _, c := range strings.Fields(node.Class) {
			if c == class {
				nodes = append(nodes, node)
				break
			}
		}
		return true
	})
	return nodes
}
