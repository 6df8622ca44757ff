package view

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts the tree into an x/net/html node tree. Hidden nodes keep
// their content and get the hidden attribute, so toggling visibility never
// changes the structure of the page.
func (n Node) HTML() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.ID != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "id", Val: n.ID})
	}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	if n.Hidden {
		el.Attr = append(el.Attr, html.Attribute{Key: "hidden"})
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(c.HTML())
	}

	return el
}

// RenderHTML writes the tree as HTML. Text and attribute values are escaped.
func RenderHTML(w io.Writer, n Node) error {
	if err := html.Render(w, n.HTML()); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func RenderString(n Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
