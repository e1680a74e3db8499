package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/huandu/go-sqlbuilder"
)

var errNoRelation = errors.New("column has no relation")

// Distinct returns the distinct values of column in ascending order, NULL included.
// It implements [filter.Source].
func (store *Store) Distinct(ctx context.Context, column filter.Column) ([]sql.NullString, error) {
	sb := store.Flavor.NewSelectBuilder()
	sb.Select(column.Name).Distinct().From(column.Table).OrderBy(column.Name).Asc()

	query, args := sb.Build()
	rows, err := store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select distinct %s: %w", column.Name, err)
	}
	defer rows.Close()

	var values []sql.NullString
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// Related returns all rows of the table referenced by column, ordered by label.
// It implements [filter.Source].
func (store *Store) Related(ctx context.Context, column filter.Column) ([]filter.RelatedChoice, error) {
	relation := column.Related
	if relation == nil {
		return nil, fmt.Errorf("%q: %w", column.Name, errNoRelation)
	}

	sb := store.Flavor.NewSelectBuilder()
	sb.Select(relation.Key, relation.Label).From(relation.Table).OrderBy(relation.Label).Asc()

	query, args := sb.Build()
	rows, err := store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", relation.Table, err)
	}
	defer rows.Close()

	var choices []filter.RelatedChoice
	for rows.Next() {
		var choice filter.RelatedChoice
		if err := rows.Scan(&choice.Key, &choice.Label); err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	return choices, rows.Err()
}

// Row is a single statement row as stored in the database.
type Row struct {
	ID        int64
	Subject   string
	Predicate string
	Object    sql.NullString
	Context   sql.NullString // identifier of the named graph
}

// Select returns a new select builder listing the rows of the given statement table.
// Filters may add conditions to the builder before passing it to [Store.Rows].
func (store *Store) Select(table string) *sqlbuilder.SelectBuilder {
	sb := store.Flavor.NewSelectBuilder()
	sb.Select(
		sb.As(table+"."+KeyColumn, KeyColumn),
		SubjectColumn,
		PredicateColumn,
		ObjectColumn,
		sb.As(GraphTable+"."+IdentifierColumn, IdentifierColumn),
	)
	sb.From(table)
	sb.JoinWithOption(sqlbuilder.LeftJoin, GraphTable, GraphTable+"."+KeyColumn+" = "+table+"."+ContextColumn)
	return sb
}

// Count returns the number of rows in table matching the conditions added by apply.
func (store *Store) Count(ctx context.Context, table string, apply func(sb *sqlbuilder.SelectBuilder) error) (count int, err error) {
	sb := store.Flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From(table)
	if apply != nil {
		if err := apply(sb); err != nil {
			return 0, err
		}
	}

	query, args := sb.Build()
	if err := store.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// Rows executes sb, as returned by [Store.Select], and returns the resulting rows.
func (store *Store) Rows(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]Row, error) {
	query, args := sb.Build()
	rows, err := store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Subject, &row.Predicate, &row.Object, &row.Context); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
