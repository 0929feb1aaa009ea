package render

import (
	"embed"
	"html/template"
	"io"
)

// DefaultPlaceholder is shown in the search box before any city is loaded.
const DefaultPlaceholder = "Search for location"

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type Page struct {
	Title              string
	Placeholder        string
	View               *View
	SnapshotGeneration uint64
}

// WritePage renders the dashboard document. A nil View renders the empty
// dashboard the browser fills in after geolocation.
func WritePage(w io.Writer, p Page) error {
	if p.Placeholder == "" {
		p.Placeholder = DefaultPlaceholder
	}
	return pageTemplate.Execute(w, p)
}
