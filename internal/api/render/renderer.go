// Package render wires html/template views into Echo. All templates are
// embedded at build time; pages are addressed by file name.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

// Page is the payload every view receives.
type Page struct {
	Session domain.Session
	// Banner is a dismissible message for backend rejections.
	Banner string
	// Fields maps form field names to inline validation messages.
	Fields map[string]string
	Data   any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	tpl *template.Template
}

func New() (*Renderer, error) {
	tpl, err := template.New("").ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name, data)
}
