package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. <pre> content is kept verbatim, <table>
// elements are rebuilt as pipe rows and other block text becomes one paragraph each.
type HTMLParser struct {
	Encoding string
	Policy   DecodePolicy
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoded, err := Decode(data, p.Encoding, p.Policy)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks []string
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			blocks = append(blocks, s)
		}
	}

	var heading string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "pre":
				add(strings.Trim(rawText(n), "\r\n"))
				return
			case "table":
				add(tableText(n, heading))
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				heading = strings.Join(strings.Fields(textContent(n)), " ")
				add(textContent(n))
				return
			case "p", "li", "blockquote":
				add(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return &Document{Name: filename, Text: strings.Join(blocks, "\n\n")}, nil
}

// tableText renders an HTML table as pipe rows, its caption becoming the label
// row. Without a caption the nearest preceding heading labels the table.
func tableText(n *html.Node, heading string) string {
	var lines []string
	captioned := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "caption":
				lines = append([]string{pipeRow([]string{textContent(n)})}, lines...)
				captioned = true
				return
			case "tr":
				var cells []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cells = append(cells, strings.Join(strings.Fields(textContent(c)), " "))
					}
				}
				if len(cells) > 0 {
					lines = append(lines, pipeRow(cells))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if !captioned && heading != "" && len(lines) > 0 {
		lines = append([]string{pipeRow([]string{heading})}, lines...)
	}
	return strings.Join(lines, "\n")
}

// rawText concatenates text nodes without trimming, preserving column alignment.
func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(rawText(n))
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
