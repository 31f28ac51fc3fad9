// Package diagram decodes the visual exercise widgets (base-10 block
// diagrams, colored cell grids, and pie charts) from raw SVG markup.
//
// The three decoders share one color palette in the vendor's renderer, so
// each classifier carries exclusion checks against the other two kinds:
// pie rejects rect-bearing markup, block and grid reject circle-bearing
// markup. Misclassification is the dominant failure mode; the exclusions
// are load-bearing and order-sensitive.
package diagram

import (
	"strings"

	"golang.org/x/net/html"
)

// node is a flattened SVG/HTML element: tag name plus attributes.
// Decoders never need the tree shape, only element populations.
type node struct {
	Tag  string
	Attr map[string]string
}

func (n node) attr(name string) string { return n.Attr[name] }

func (n node) hasAttr(name string) bool {
	_, ok := n.Attr[name]
	return ok
}

// parseMarkup flattens raw markup into element nodes. When the markup
// embeds both a light and a dark theme fragment, only the dark one is
// returned: the vendor renders the dark fragment with the palette the
// calibration colors target.
func parseMarkup(markup string) []node {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var light, dark []node
	var walk func(n *html.Node, inDark bool)
	walk = func(n *html.Node, inDark bool) {
		if n.Type == html.ElementNode {
			attrs := make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			if isDarkMarker(n.Data, attrs) {
				inDark = true
			}
			el := node{Tag: n.Data, Attr: attrs}
			if inDark {
				dark = append(dark, el)
			} else {
				light = append(light, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inDark)
		}
	}
	walk(doc, false)

	if hasShapes(dark) {
		return dark
	}
	return append(light, dark...)
}

// isDarkMarker detects the wrapper the vendor puts around the dark-theme
// copy of a diagram.
func isDarkMarker(tag string, attrs map[string]string) bool {
	if v, ok := attrs["class"]; ok && strings.Contains(strings.ToLower(v), "dark") {
		return true
	}
	if v, ok := attrs["data-theme"]; ok && strings.EqualFold(v, "dark") {
		return true
	}
	return false
}

// hasShapes reports whether the node set contains any drawable element.
func hasShapes(nodes []node) bool {
	for _, n := range nodes {
		switch n.Tag {
		case "rect", "path", "circle", "ellipse":
			return true
		}
	}
	return false
}

func countTag(nodes []node, tag string) int {
	c := 0
	for _, n := range nodes {
		if n.Tag == tag {
			c++
		}
	}
	return c
}

// matchesFill reports whether the fill attribute is one of the calibrated
// palette colors. Comparison is case-insensitive on the hex string.
func matchesFill(fill string, palette []string) bool {
	fill = strings.ToLower(strings.TrimSpace(fill))
	if fill == "" || fill == "none" {
		return false
	}
	for _, c := range palette {
		if fill == strings.ToLower(c) {
			return true
		}
	}
	return false
}

// hasColorFill reports whether the element carries any paint at all
// (a fill that is neither missing nor "none").
func hasColorFill(n node) bool {
	fill := strings.ToLower(strings.TrimSpace(n.attr("fill")))
	return fill != "" && fill != "none"
}
