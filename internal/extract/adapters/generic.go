package adapters

// TextAdapter is the fallback adapter: content is already plain text
type TextAdapter struct {
	BaseAdapter
}

// NewTextAdapter creates a new plain-text adapter
func NewTextAdapter() *TextAdapter {
	return &TextAdapter{}
}

// Name returns the adapter name
func (a *TextAdapter) Name() string {
	return "text"
}

// CanHandle always returns true (fallback adapter)
func (a *TextAdapter) CanHandle(name string, content string) bool {
	return true
}

// Text returns the content unchanged
func (a *TextAdapter) Text(content string) (string, error) {
	return content, nil
}
