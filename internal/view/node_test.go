package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func testTree() Node {
	return Element("section",
		TextElement("h3", "Upper/Lower").WithID("splitName"),
		Element("ul",
			TextElement("li", "Stay hydrated").WithClass("rec"),
			TextElement("li", "Sleep 8h").WithClass("rec muted"),
		).WithID("recommendationsList"),
		TextElement("p", "secret").WithID("description").WithHidden(true),
	).WithID("results").WithClass("results")
}

func TestNode_Builders_DoNotMutate(t *testing.T) {
	base := Element("div").WithAttr("data-day", "0")
	changed := base.WithAttr("data-day", "1").WithAttr("data-index", "2").WithChildren(Text("x"))

	v, ok := base.Attr("data-day")
	require.True(t, ok)
	assert.Equal(t, "0", v)
	assert.Len(t, base.Attrs, 1)
	assert.Empty(t, base.Children)

	v, ok = changed.Attr("data-day")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Len(t, changed.Attrs, 2)
	_, ok = changed.Attr("missing")
	assert.False(t, ok)
}

func TestNode_Queries(t *testing.T) {
	tree := testTree()

	n, ok := tree.FindByID("splitName")
	require.True(t, ok)
	assert.Equal(t, "Upper/Lower", n.TextContent())

	_, ok = tree.FindByID("nope")
	assert.False(t, ok)

	recs := tree.FindAllByClass("rec")
	require.Len(t, recs, 2)
	assert.Equal(t, "Stay hydrated", recs[0].TextContent())
	assert.Equal(t, "Sleep 8h", recs[1].TextContent())
	assert.Len(t, tree.FindAllByClass("muted"), 1)

	assert.Equal(t, "Upper/LowerStay hydratedSleep 8hsecret", tree.TextContent())
}

func TestRenderHTML(t *testing.T) {
	tree := testTree().WithChildren(
		Element("img").WithAttr("src", "/a.png").WithAttr("alt", `Squat "start"`),
		TextElement("p", "<script>alert(1)</script>"),
	)

	out, err := RenderString(tree)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<section id="results" class="results">`))
	assert.Contains(t, out, `<h3 id="splitName">Upper/Lower</h3>`)
	assert.Contains(t, out, `<p id="description" hidden="">secret</p>`)
	assert.Contains(t, out, `<img src="/a.png" alt="Squat &#34;start&#34;"/>`)
	assert.Contains(t, out, `&lt;script&gt;alert(1)&lt;/script&gt;`)
	assert.NotContains(t, out, `<script>`)

	// output parses back into the same structure
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	var items int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			items++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	assert.Equal(t, 2, items)
}

func TestNode_JSON(t *testing.T) {
	tree := TextElement("span", "1700 kcal").WithID("bmr").WithAttr("data-unit", "kcal")
	b, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tag": "span",
		"id": "bmr",
		"attrs": [{"key": "data-unit", "value": "kcal"}],
		"children": [{"text": "1700 kcal"}]
	}`, string(b))

	var decoded Node
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, tree, decoded)
}
