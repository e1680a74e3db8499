package admin

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/gorilla/mux"
)

// ModelInfo is the json representation of a model.
type ModelInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Table string `json:"table"`
	Count int    `json:"count"`
}

// FilterInfo is the json representation of a filter and its choices.
type FilterInfo struct {
	Title   string          `json:"title"`
	Choices []filter.Choice `json:"choices"`
}

// StatementInfo is the json representation of a single row.
type StatementInfo struct {
	ID        int64   `json:"id"`
	Subject   string  `json:"subject"`
	Predicate string  `json:"predicate"`
	Object    *string `json:"object"`
	Context   *string `json:"context"`
}

// ChangeListInfo is the json representation of a change list.
type ChangeListInfo struct {
	Model ModelInfo `json:"model"`

	Page  int `json:"page"`
	Pages int `json:"pages"`

	Filters    []FilterInfo    `json:"filters"`
	Statements []StatementInfo `json:"statements"`
}

// ErrorInfo is returned when a request could not be served.
type ErrorInfo struct {
	Message string `json:"message"`
}

func (admin *Admin) jsonIndex(w http.ResponseWriter, r *http.Request) {
	models, err := admin.summaries(r)
	if err != nil {
		admin.jsonError(w, err)
		return
	}

	infos := make([]ModelInfo, len(models))
	for i, model := range models {
		infos[i] = ModelInfo{Name: model.Name, Title: model.Title, Table: model.Table, Count: model.Count}
	}
	admin.jsonSend(w, http.StatusOK, infos)
}

func (admin *Admin) jsonChangeList(w http.ResponseWriter, r *http.Request) {
	model, ok := admin.findModel(mux.Vars(r)["model"])
	if !ok {
		admin.jsonSend(w, http.StatusNotFound, ErrorInfo{Message: "unknown model"})
		return
	}

	list, err := admin.newChangeList(r.Context(), model, r.URL.Query())
	if err != nil {
		admin.jsonError(w, err)
		return
	}

	info := ChangeListInfo{
		Model: ModelInfo{Name: model.Name, Title: model.Title, Table: model.Table, Count: list.Total},
		Page:  list.Page,
		Pages: list.Pages,

		Filters:    make([]FilterInfo, len(list.Filters)),
		Statements: make([]StatementInfo, len(list.Rows)),
	}
	for i, rf := range list.Filters {
		info.Filters[i] = FilterInfo{Title: rf.Title, Choices: rf.Choices}
	}
	for i, row := range list.Rows {
		info.Statements[i] = newStatementInfo(row)
	}
	admin.jsonSend(w, http.StatusOK, info)
}

func newStatementInfo(row store.Row) StatementInfo {
	return StatementInfo{
		ID:        row.ID,
		Subject:   row.Subject,
		Predicate: row.Predicate,
		Object:    nullable(row.Object),
		Context:   nullable(row.Context),
	}
}

func nullable(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func (admin *Admin) jsonError(w http.ResponseWriter, err error) {
	if errors.Is(err, filter.ErrIncorrectLookup) {
		admin.jsonSend(w, http.StatusBadRequest, ErrorInfo{Message: err.Error()})
		return
	}

	admin.Status.LogError("serve api", err)
	admin.jsonSend(w, http.StatusInternalServerError, ErrorInfo{Message: "internal server error"})
}

func (admin *Admin) jsonSend(w http.ResponseWriter, code int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		admin.Status.LogError("encode json", err)
	}
}
