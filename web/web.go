// Package web embeds the HTML templates and static assets served by the view routes.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var views embed.FS

//go:embed public
var public embed.FS

// Engine returns the html view engine over the embedded templates.
// Templates are addressed by path, e.g. "views/index".
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(views), ".html")
}

// Public returns the static asset tree rooted at public/
func Public() http.FileSystem {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
