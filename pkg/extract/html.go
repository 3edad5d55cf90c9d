package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLTable extracts columns and sample rows from the first table in an
// HTML fragment, e.g. a balance sheet pasted from a browser. The first
// row supplies headers, remaining rows supply sample values.
func HTMLTable(r io.Reader) ([]Column, []map[string]any, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := findTable(doc)
	if table == nil {
		return nil, nil, fmt.Errorf("no table found in HTML input")
	}

	var grid [][]string
	for _, tr := range findRows(table) {
		grid = append(grid, cellTexts(tr))
	}
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("table contains no rows")
	}

	return fromGrid(grid)
}

// findTable returns the first table element in document order.
func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

// findRows collects the tr descendants of a table, skipping rows of
// nested tables.
func findRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch c.Data {
				case "tr":
					rows = append(rows, c)
					continue
				case "table":
					continue
				}
			}
			walk(c)
		}
	}
	walk(n)
	return rows
}

// cellTexts returns the collapsed text of each th/td cell in a row.
func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, nodeText(c))
		}
	}
	return cells
}

// nodeText extracts a node's text content with whitespace collapsed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
