// Package assets holds templates and static files shared by all pages of the admin.
package assets

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed "templates/*.html"
var templates embed.FS

//go:embed dist
var staticFS embed.FS

// Styles contains the <link> tags to include in the head of every page.
const Styles = `<link rel="stylesheet" href="/assets/admin.css">`

var shared = template.Must(template.ParseFS(templates, "templates/*.html"))

// NewSharedTemplate creates a new template with the given name.
// It will be able to make use of shared templates as well as functions.
func NewSharedTemplate(name string, funcMap template.FuncMap) *template.Template {
	new := template.New(name)
	new.Funcs(funcMap)
	for _, template := range shared.Templates() {
		if template != nil && template.Tree != nil {
			new.AddParseTree(template.Tree.Name, template.Tree.Copy())
		}
	}
	return new
}

// MustParseShared parses value into a new shared template, see [NewSharedTemplate].
// The associated template "styles" renders the stylesheets of the admin.
func MustParseShared(name string, value string, funcMap template.FuncMap) *template.Template {
	t := template.Must(NewSharedTemplate(name, funcMap).Parse(value))
	template.Must(t.New("styles").Parse(Styles))
	return t
}

// AssetHandler handles serving static files under the /assets/ route.
var AssetHandler http.Handler

func init() {
	fs, err := fs.Sub(staticFS, "dist")
	if err != nil {
		panic("AssetHandler: Unable to init")
	}
	AssetHandler = http.StripPrefix("/assets/", http.FileServer(http.FS(fs)))
}
