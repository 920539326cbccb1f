package compose

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AnchorEmbeddedHeadings scans editor HTML for h2 elements and rewrites each
// to carry the anchor returned by assign, in document order. It reports
// whether any heading was found; on found=false (or unparseable input) the
// caller should keep the original markup.
func AnchorEmbeddedHeadings(fragment string, assign func(title string) string) (string, bool) {
	if !strings.Contains(strings.ToLower(fragment), "<h2") {
		return fragment, false
	}

	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return fragment, false
	}

	found := false
	for _, node := range nodes {
		walkHeadings(node, func(h *html.Node) {
			title := nodeText(h)
			if title == "" {
				return
			}
			setAttr(h, "id", assign(title))
			found = true
		})
	}
	if !found {
		return fragment, false
	}

	var buf bytes.Buffer
	for _, node := range nodes {
		if err := html.Render(&buf, node); err != nil {
			return fragment, false
		}
	}
	return buf.String(), true
}

func walkHeadings(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.H2 {
		visit(n)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkHeadings(child, visit)
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func setAttr(n *html.Node, key, value string) {
	for i, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func escape(s string) string {
	return html.EscapeString(s)
}
