package assets

import (
	"fmt"
	"io"
	"text/template"
)

// OutlineTemplate is the data passed to the outline template.
type OutlineTemplate struct {
	Title  string
	Scenes []OutlineScene
}

// OutlineScene is one row of the outline table.
type OutlineScene struct {
	Order     int
	Subplot   string
	Color     string
	Text      string
	Intensity int
	Notes     []string
}

// WriteOutline renders data with tmpl into w.
func WriteOutline(w io.Writer, tmpl *template.Template, data OutlineTemplate) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
