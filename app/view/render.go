package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is what the templates see
type pageData struct {
	State
	Title      string
	HasTitle   bool
	HasBody    bool
	Paragraphs []string
}

func newPageData(s State) pageData {
	data := pageData{State: s}
	if s.Post.Title != nil {
		data.Title = *s.Post.Title
		data.HasTitle = true
	}
	if s.Post.Body != nil {
		data.HasBody = true
		data.Paragraphs = strings.Split(*s.Post.Body, "\n")
	}
	return data
}

// Render writes the page for the current state. The wrapper, navigation
// and content slot are always present whatever the phase.
func (v *PostView) Render(w io.Writer) error {
	return RenderState(w, v.Snapshot())
}

// RenderState writes the page for s
func RenderState(w io.Writer, s State) error {
	if err := page.ExecuteTemplate(w, "layout", newPageData(s)); err != nil {
		return fmt.Errorf("failed to render post view: %w", err)
	}
	return nil
}
