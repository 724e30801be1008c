package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// Adapter turns one input format into plain clinical text, one source line
// per output line.
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given content
	CanHandle(name string, content string) bool

	// Text converts the content to plain text
	Text(content string) (string, error)
}

// Registry manages input adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	// Register built-in adapters
	registry.Register(NewHTMLAdapter())

	// Plain text is the fallback
	registry.generic = NewTextAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given source name and content
func (r *Registry) FindAdapter(name string, content string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(name, content) {
			return adapter
		}
	}
	return r.generic
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// ParseHTML parses HTML string into a node tree
func (b *BaseAdapter) ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}
