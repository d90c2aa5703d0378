// Package view renders the server-side HTML pages. Templates are embedded in
// the binary; each page is the shared layout plus one content template,
// parsed once at startup.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var files embed.FS

//go:embed static
var staticFiles embed.FS

// Static returns the embedded asset tree rooted at its contents, for mounting
// under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pageNames = []string{
	"login",
	"signup",
	"staff_login",
	"menu",
	"cart",
	"checkout",
	"confirmation",
	"reservation",
	"my_orders",
	"my_reservations",
	"dashboard",
	"console_list",
	"console_form",
	"error",
}

// Renderer satisfies echo.Renderer over the embedded template set.
type Renderer struct {
	pages map[string]*template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// money renders a float with exactly two decimals. The epsilon keeps
		// values like 4.675 from rounding down through binary representation.
		"money": func(v float64) string {
			return strconv.FormatFloat(v+1e-9, 'f', 2, 64)
		},
		"pct": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"inc": func(n int) int { return n + 1 },
	}
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base.html").
			Funcs(funcMap()).
			ParseFS(files, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}
