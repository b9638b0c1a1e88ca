package lookup

import (
	"strings"

	"golang.org/x/net/html"
)

// leadText extracts the lead-section paragraph text from article HTML:
// every <p> before the first <h2>, skipping infobox and navbox tables.
func leadText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(hasClass(n, "mw-parser-output") || attr(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = doc
	}

	var paragraphs []string
	inLead := true

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if !inLead {
			return
		}
		if n.Type == html.ElementNode && n.Data == "h2" {
			inLead = false
			return
		}
		if n.Type == html.ElementNode && n.Data == "table" &&
			(hasClass(n, "infobox") || hasClass(n, "navbox")) {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)

	return strings.Join(paragraphs, "\n")
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
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
	return b.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
