package pages

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// newEngine a view engine over one views directory; templates are parsed on Load or first Render
func newEngine(dir string) *html.Engine {
	sub, err := fs.Sub(viewsFS, path.Join("views", dir))
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// loadEngine parses the templates of dir right away so broken views fail on load
func loadEngine(dir string) (*html.Engine, error) {
	engine := newEngine(dir)
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return engine, nil
}

// fragment renders a view into markup another view embeds
func fragment(engine *html.Engine, name string, binding any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := engine.Render(&buf, name, binding); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
