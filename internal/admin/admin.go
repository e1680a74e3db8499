// Package admin implements an administrative listing of RDF statements.
package admin

import (
	"html/template"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/FAU-CDI/rdfadmin/internal/assets"
	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/status"
	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/FAU-CDI/rdfadmin/pkg/htmlx"
	"github.com/gorilla/mux"
)

// Admin implements an [http.Handler] that lists statements of a store.
type Admin struct {
	Store    *store.Store
	Registry *filter.Registry
	Models   []Model

	// FilterTemplates holds additional templates for rendering filters, by name.
	FilterTemplates map[string]string

	Footer template.HTML // html to include in the footer of every page, see [htmlx.SanitizeFragment]
	Status *status.Status

	ready atomic.Bool

	init      sync.Once
	initErr   error
	filterTpl *template.Template
	footer    template.HTML // sanitized Footer
	mux       mux.Router
}

// MarkReady marks the store as fully loaded.
// Until then, every page shows the current loading status.
func (admin *Admin) MarkReady() {
	admin.ready.Store(true)
}

// Prepare initializes the routes and templates of this admin.
// It is called automatically by ServeHTTP, but may be called earlier to detect invalid templates.
func (admin *Admin) Prepare() error {
	admin.init.Do(func() {
		var footer string
		footer, admin.initErr = htmlx.SanitizeFragment(string(admin.Footer))
		if admin.initErr != nil {
			return
		}
		admin.footer = template.HTML(footer)

		admin.filterTpl, admin.initErr = parseFilterTemplates(admin.FilterTemplates)
		if admin.initErr != nil {
			return
		}

		admin.mux.HandleFunc("/", admin.htmlIndex)
		admin.mux.HandleFunc("/model/{model}", admin.htmlChangeList)

		admin.mux.HandleFunc("/api/v1", admin.jsonIndex)
		admin.mux.HandleFunc("/api/v1/model/{model}", admin.jsonChangeList)

		admin.mux.PathPrefix("/assets/").Handler(assets.AssetHandler)
	})
	return admin.initErr
}

func (admin *Admin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := admin.Prepare(); err != nil {
		admin.Status.LogError("prepare admin", err)
		http.Error(w, "admin not available", http.StatusInternalServerError)
		return
	}

	if !admin.ready.Load() && !strings.HasPrefix(r.URL.Path, "/assets/") {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			admin.jsonFallback(w, r)
		} else {
			admin.htmlFallback(w, r)
		}
		return
	}

	admin.mux.ServeHTTP(w, r)
}

// findModel returns the model with the given name.
func (admin *Admin) findModel(name string) (*Model, bool) {
	for i := range admin.Models {
		if admin.Models[i].Name == name {
			return &admin.Models[i], true
		}
	}
	return nil, false
}

// summaries counts the statements of every model.
func (admin *Admin) summaries(r *http.Request) ([]modelSummary, error) {
	summaries := make([]modelSummary, len(admin.Models))
	for i := range admin.Models {
		count, err := admin.Store.Count(r.Context(), admin.Models[i].Table, nil)
		if err != nil {
			return nil, err
		}
		summaries[i] = modelSummary{Model: &admin.Models[i], Count: count}
	}
	return summaries, nil
}
