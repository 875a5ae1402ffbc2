package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var indexTmpl *template.Template

// loadTemplatesFromFS parses the page templates under dir in fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	indexTmpl = tmpl
	return nil
}

// LoadTemplates parses the embedded templates. Call it during startup; if it fails
// the server must not start.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

type IndexData struct {
	Routes []string
}

// RenderIndex writes the route listing served at /.
func RenderIndex(w io.Writer, data *IndexData) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index.html", data)
}
