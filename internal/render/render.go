// Package render produces the HTML fragments returned by the todo
// endpoints and embedded in broadcast events.
//
// Rendering is pure: the same item state always yields byte-identical
// output, and every fragment's root element id is derived from the todo
// id so clients can locate the matching DOM node. Titles are escaped by
// html/template.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jholtmann/todocast/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders todo fragments from templates parsed once at startup.
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Item renders the single-item fragment used by create/toggle responses
// and broadcast payloads.
func (r *Renderer) Item(todo domain.Todo) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, "item.html", todo); err != nil {
		return "", fmt.Errorf("failed to render item fragment: %w", err)
	}
	return sb.String(), nil
}

// List renders the full-list fragment: the creation form followed by all
// item fragments in list order.
func (r *Renderer) List(todos []domain.Todo) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, "list.html", todos); err != nil {
		return "", fmt.Errorf("failed to render list fragment: %w", err)
	}
	return sb.String(), nil
}
