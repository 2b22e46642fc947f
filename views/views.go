// Package views holds the server-rendered pages.
package views

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

const placeholder = "Unknown"

// NewEngine returns the template engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("orUnknown", OrPlaceholder)
	engine.AddFunc("timestamp", func(t time.Time) string {
		if t.IsZero() {
			return placeholder
		}
		return t.Local().Format("Jan 2, 2006 3:04 PM")
	})
	return engine
}

// OrPlaceholder substitutes the placeholder for absent optional fields.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
