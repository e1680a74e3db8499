package admin

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"

	"github.com/FAU-CDI/rdfadmin/internal/assets"
	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/dustin/go-humanize"
)

var templateFuncs = template.FuncMap{
	"nullstring": func(value sql.NullString) string {
		if !value.Valid {
			return filter.DisplayNone
		}
		return value.String
	},
	"comma": func(value int) string {
		return humanize.Comma(int64(value))
	},
}

//go:embed templates/filters/*.html
var filterFS embed.FS

// parseFilterTemplates parses the builtin filter templates, followed by extra.
// Templates in extra replace builtin templates of the same name.
func parseFilterTemplates(extra map[string]string) (*template.Template, error) {
	t, err := template.New("filters").Funcs(templateFuncs).ParseFS(filterFS, "templates/filters/*.html")
	if err != nil {
		return nil, fmt.Errorf("builtin filter templates: %w", err)
	}
	for name, source := range extra {
		if _, err := t.New(name).Parse(source); err != nil {
			return nil, fmt.Errorf("filter template %q: %w", name, err)
		}
	}
	return t, nil
}

//go:embed templates/index.html
var indexHTML string

var indexTemplate = assets.MustParseShared(
	"index.html",
	indexHTML,
	templateFuncs,
)

//go:embed templates/changelist.html
var changelistHTML string

var changelistTemplate = assets.MustParseShared(
	"changelist.html",
	changelistHTML,
	templateFuncs,
)

//go:embed templates/error.html
var errorHTML string

var errorTemplate = assets.MustParseShared(
	"error.html",
	errorHTML,
	templateFuncs,
)

//go:embed templates/loading.html
var loadingHTML string

var loadingTemplate = assets.MustParseShared(
	"loading.html",
	loadingHTML,
	templateFuncs,
)
