package store

import "github.com/FAU-CDI/rdfadmin/internal/filter"

const (
	GraphTable   = "named_graph"
	URITable     = "uri_statement"
	LiteralTable = "literal_statement"
)

const (
	KeyColumn        = "id"
	IdentifierColumn = "identifier"
	SubjectColumn    = "subject"
	PredicateColumn  = "predicate"
	ObjectColumn     = "object"
	ContextColumn    = "context_id"
)

// StatementColumns are the columns of both statement tables, in display order.
var StatementColumns = []string{KeyColumn, SubjectColumn, PredicateColumn, ObjectColumn, ContextColumn}

// Columns returns the filterable columns of the given statement table.
func Columns(table string) []filter.Column {
	object := filter.KindURI
	if table == LiteralTable {
		object = filter.KindLiteral
	}

	return []filter.Column{
		{Table: table, Name: SubjectColumn, Title: "Subject", Kind: filter.KindURI},
		{Table: table, Name: PredicateColumn, Title: "Predicate", Kind: filter.KindURI},
		{Table: table, Name: ObjectColumn, Title: "Object", Kind: object, Nullable: true},
		{
			Table:    table,
			Name:     ContextColumn,
			Path:     "context",
			Title:    "Context",
			Kind:     filter.KindRelated,
			Nullable: true,
			Related:  &filter.Relation{Table: GraphTable, Key: KeyColumn, Label: IdentifierColumn},
		},
	}
}
