package admin

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/gorilla/mux"
)

type modelSummary struct {
	*Model
	Count int
}

type htmlIndexContext struct {
	Models []modelSummary
	Footer template.HTML
}

func (admin *Admin) htmlIndex(w http.ResponseWriter, r *http.Request) {
	models, err := admin.summaries(r)
	if err != nil {
		admin.htmlError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, htmlIndexContext{Models: models, Footer: admin.footer}); err != nil {
		admin.Status.LogError("render index", err)
	}
}

type htmlChangeListContext struct {
	List    *changeList
	Filters []template.HTML
	Footer  template.HTML
}

func (admin *Admin) htmlChangeList(w http.ResponseWriter, r *http.Request) {
	model, ok := admin.findModel(mux.Vars(r)["model"])
	if !ok {
		http.NotFound(w, r)
		return
	}

	list, err := admin.newChangeList(r.Context(), model, r.URL.Query())
	if err != nil {
		admin.htmlError(w, err)
		return
	}

	filters := make([]template.HTML, len(list.Filters))
	for i, rf := range list.Filters {
		if filters[i], err = rf.HTML(admin.filterTpl); err != nil {
			admin.htmlError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	err = changelistTemplate.Execute(w, htmlChangeListContext{
		List:    list,
		Filters: filters,
		Footer:  admin.footer,
	})
	if err != nil {
		admin.Status.LogError("render changelist", err)
	}
}

type htmlErrorContext struct {
	Title   string
	Message string
	Footer  template.HTML
}

// htmlError renders an error page for err.
// Incorrect lookups are reported to the client, any other error is logged.
func (admin *Admin) htmlError(w http.ResponseWriter, err error) {
	code, data := http.StatusBadRequest, htmlErrorContext{
		Title:   "Invalid filter",
		Message: err.Error(),
		Footer:  admin.footer,
	}
	if !errors.Is(err, filter.ErrIncorrectLookup) {
		admin.Status.LogError("serve admin", err)
		code = http.StatusInternalServerError
		data.Title = "Internal Server Error"
		data.Message = "something went wrong, see the server log for details"
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(code)
	if err := errorTemplate.Execute(w, data); err != nil {
		admin.Status.LogError("render error", err)
	}
}
