package adapters

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// HTMLAdapter reduces an HTML clinical note to its visible text. Block
// elements end a line so "Field: value" rows survive as fields.
type HTMLAdapter struct {
	BaseAdapter
}

// NewHTMLAdapter creates a new HTML adapter
func NewHTMLAdapter() *HTMLAdapter {
	return &HTMLAdapter{}
}

// Name returns the adapter name
func (a *HTMLAdapter) Name() string {
	return "html"
}

var htmlSniff = regexp.MustCompile(`(?i)^\s*(?:<!doctype html|<html|<body|<div|<p[\s>]|<table|<section)`)

// CanHandle matches .html/.htm sources or content that opens with markup
func (a *HTMLAdapter) CanHandle(name string, content string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return htmlSniff.MatchString(content)
}

// Text extracts visible text, skipping scripts and styles
func (a *HTMLAdapter) Text(content string) (string, error) {
	doc, err := a.ParseHTML(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return a.visibleText(doc), nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "section": true, "article": true,
	"header": true, "footer": true, "dt": true, "dd": true, "pre": true, "table": true,
	"ul": true, "ol": true, "blockquote": true,
}

// visibleText walks the tree, emitting a newline around block elements and
// a space between inline runs. Hidden elements are dropped.
func (a *HTMLAdapter) visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head", "template":
				return
			}
			if a.hidden(n) {
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			buf.WriteString("\n")
		}
	}

	walk(n)

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// hidden reports elements a browser would not show: the hidden attribute,
// aria-hidden, or the common utility classes for it
func (a *HTMLAdapter) hidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch {
		case attr.Key == "hidden":
			return true
		case attr.Key == "aria-hidden" && attr.Val == "true":
			return true
		}
	}
	return a.HasClass(n, "hidden") || a.HasClass(n, "d-none")
}
