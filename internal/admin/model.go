package admin

import (
	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/store"
)

// Model describes a table listed by the admin.
type Model struct {
	Name  string // name used in urls
	Title string // human readable name
	Table string

	// Columns are the filterable columns of the table.
	Columns []filter.Column

	// ListFilter are the filters shown in the sidebar, in order.
	ListFilter []ListFilter
}

// ListFilter configures a single filter of a model.
type ListFilter struct {
	Column string // name of the column to filter

	// Factory creates the filter.
	// If nil, the factory registered for the kind of column is used.
	Factory filter.Factory
}

// Column returns the column with the given name.
func (model *Model) Column(name string) (filter.Column, bool) {
	for _, column := range model.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return filter.Column{}, false
}

// DefaultModels returns the models for both statement tables.
// Each is filtered by predicate, object and the last segment of the context.
func DefaultModels() []Model {
	_, context := filter.LastSegmentRelated("Context", "")

	model := func(name, title, table string) Model {
		return Model{
			Name:    name,
			Title:   title,
			Table:   table,
			Columns: store.Columns(table),
			ListFilter: []ListFilter{
				{Column: store.PredicateColumn},
				{Column: store.ObjectColumn},
				{Column: store.ContextColumn, Factory: context},
			},
		}
	}

	return []Model{
		model("uri", "URI Statements", store.URITable),
		model("literal", "Literal Statements", store.LiteralTable),
	}
}
