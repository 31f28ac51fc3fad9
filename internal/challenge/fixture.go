package challenge

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Fixture parsing mirrors what the live scanner extracts, over the same
// vendor markers, so a saved HTML snapshot exercises the identical solver
// path. All elements are static recorders: solving a fixture performs no
// real actions.

// ParseFixture reads an exercise snapshot into a Context.
func ParseFixture(r io.Reader) (*Context, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("fixture: parse: %w", err)
	}

	root := findNode(doc, func(n *html.Node) bool {
		return attrVal(n, "data-test") == "challenge" || hasClass(n, "challenge-container")
	})
	if root == nil {
		// A bare fragment is treated as the container itself.
		root = doc
	}

	c := &Context{Container: staticFromNode(root)}

	if h := findNode(root, func(n *html.Node) bool {
		return attrVal(n, "data-test") == "challenge-header" || hasClass(n, "challenge-header")
	}); h != nil {
		el := staticFromNode(h)
		c.Header = el
		c.HeaderText = strings.ToLower(el.TextContent)
	}

	if eq := findNode(root, func(n *html.Node) bool {
		return hasClass(n, "katex") || attrVal(n, "data-test") == "challenge-equation"
	}); eq != nil {
		el := staticFromNode(eq)
		c.Equation = el
		c.EquationMarkup = el.OuterHTML
	}

	if in := findNode(root, func(n *html.Node) bool {
		return n.Data == "input" && attrVal(n, "type") == "text"
	}); in != nil {
		c.TextInput = staticFromNode(in)
	}

	for _, n := range findAll(root, func(n *html.Node) bool {
		return attrVal(n, "data-test") == "challenge-choice" || hasClass(n, "challenge-choice")
	}) {
		c.Choices = append(c.Choices, staticFromNode(n))
	}

	for _, n := range findAll(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "iframe"
	}) {
		srcdoc := attrVal(n, "srcdoc")
		c.Widgets = append(c.Widgets, &StaticWidget{
			Doc:     srcdoc,
			Scripts: scriptText(srcdoc),
		})
	}

	return c, nil
}

func staticFromNode(n *html.Node) *StaticElement {
	attrs := map[string]string{}
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			attrs[a.Key] = a.Val
		}
	}
	return &StaticElement{
		TextContent: nodeText(n),
		OuterHTML:   renderNode(n),
		Attrs:       attrs,
	}
}

// scriptText extracts the concatenated inline script sources from a
// widget's srcdoc payload.
func scriptText(srcdoc string) string {
	if srcdoc == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(srcdoc))
	if err != nil {
		return ""
	}
	var parts []string
	for _, s := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script"
	}) {
		parts = append(parts, nodeText(s))
	}
	return strings.Join(parts, "\n")
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
			return // do not descend into a match
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrVal(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
