// Package filter implements list filters for the statement admin.
//
// A [Filter] narrows the rows of a change list by a single column and
// enumerates the [Choice]s offered to the user for that column.
// Filters are constructed per request by a [Factory], usually obtained from a [Registry].
package filter

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"net/url"

	"github.com/huandu/go-sqlbuilder"
)

// ErrIncorrectLookup is wrapped by all errors caused by malformed lookup parameters.
// Such errors are the fault of the request, not of the server.
var ErrIncorrectLookup = errors.New("incorrect lookup parameters")

// Filter narrows a change list by a single column.
type Filter interface {
	// Title is shown above the filter choices.
	Title() string

	// Template is the name of the template used to render the choices.
	Template() string

	// Expected returns the lookup parameters this filter consumes.
	Expected() []string

	// Apply adds the conditions of this filter to sb.
	// Malformed lookup parameters result in an error wrapping [ErrIncorrectLookup].
	Apply(sb *sqlbuilder.SelectBuilder) error

	// Choices enumerates the choices to be rendered.
	Choices(cl *ChangeList) iter.Seq[Choice]
}

// Choice is a single choice offered by a filter.
type Choice struct {
	Selected    bool   `json:"selected"`
	QueryString string `json:"query_string"`
	Display     string `json:"display"`

	Hint   string `json:"hint,omitempty"`   // secondary text of related choices
	Prefix string `json:"prefix,omitempty"` // namespace of uri choices
}

// Display texts of the choices that do not correspond to a value.
const (
	DisplayAll  = "All"
	DisplayNone = "(None)"
)

// Kind is the kind of value held in a column.
type Kind int

const (
	KindText    Kind = iota // plain text
	KindURI                 // a [term.URI]
	KindLiteral             // an encoded [term.Literal]
	KindRelated             // a reference to a row in a different table
)

func (kind Kind) String() string {
	switch kind {
	case KindText:
		return "text"
	case KindURI:
		return "uri"
	case KindLiteral:
		return "literal"
	case KindRelated:
		return "related"
	}
	return "unknown"
}

// Column describes a filterable column.
type Column struct {
	Table    string // table the column belongs to
	Name     string // name of the column
	Path     string // prefix of lookup parameters, defaults to Name
	Title    string // human readable title
	Kind     Kind
	Nullable bool

	// Related describes the referenced table of KindRelated columns.
	Related *Relation
}

// DisplayTitle returns the title of the column, falling back to its name.
func (column Column) DisplayTitle() string {
	if column.Title != "" {
		return column.Title
	}
	return column.Name
}

// LookupPath returns the prefix used for lookup parameters of this column.
func (column Column) LookupPath() string {
	if column.Path != "" {
		return column.Path
	}
	return column.Name
}

// Relation describes the table referenced by a column.
type Relation struct {
	Table string // referenced table
	Key   string // key column inside the referenced table
	Label string // column holding a human-readable label
}

// RelatedChoice is a row of a related table offered as a choice.
type RelatedChoice struct {
	Key   int64
	Label string
}

// Source provides the values a filter can offer.
type Source interface {
	// Distinct returns the distinct values of column, including NULL if present.
	Distinct(ctx context.Context, column Column) ([]sql.NullString, error)

	// Related returns the rows of the table referenced by column.
	Related(ctx context.Context, column Column) ([]RelatedChoice, error)
}

// Factory creates a new filter for column.
// params are the lookup parameters of the current request and must not be modified.
type Factory func(ctx context.Context, column Column, params url.Values, source Source) (Filter, error)
