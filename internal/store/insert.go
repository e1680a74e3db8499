package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FAU-CDI/rdfadmin/internal/term"
)

var (
	errInsufficientQueryVars = errors.New("insufficient query variables")
	errUnknownObject         = errors.New("unknown object type")
)

// Graph returns the id of the named graph with the given identifier, creating it if needed.
func (store *Store) Graph(ctx context.Context, identifier string) (int64, error) {
	store.graphLock.Lock()
	defer store.graphLock.Unlock()

	if id, ok := store.graphs[identifier]; ok {
		return id, nil
	}

	sb := store.Flavor.NewSelectBuilder()
	sb.Select(KeyColumn).From(GraphTable).Where(sb.Equal(IdentifierColumn, identifier)).Limit(1)

	var id int64
	query, args := sb.Build()
	err := store.DB.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ib := store.Flavor.NewInsertBuilder()
		ib.InsertInto(GraphTable).Cols(IdentifierColumn).Values(identifier)

		query, args := ib.Build()
		result, err := store.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert graph %q: %w", identifier, err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("insert graph %q: %w", identifier, err)
		}
	case err != nil:
		return 0, fmt.Errorf("find graph %q: %w", identifier, err)
	}

	if store.graphs == nil {
		store.graphs = make(map[string]int64)
	}
	store.graphs[identifier] = id
	return id, nil
}

var statementInsertColumns = []string{SubjectColumn, PredicateColumn, ObjectColumn, ContextColumn}

// Insert inserts statements into the store.
func (store *Store) Insert(ctx context.Context, statements ...Statement) error {
	var uris, literals [][]any
	for _, statement := range statements {
		var context sql.NullInt64
		if statement.Graph != "" {
			id, err := store.Graph(ctx, statement.Graph)
			if err != nil {
				return err
			}
			context = sql.NullInt64{Int64: id, Valid: true}
		}

		var object sql.NullString
		switch o := statement.Object.(type) {
		case nil:
			uris = append(uris, []any{string(statement.Subject), string(statement.Predicate), object, context})
		case term.URI:
			object = sql.NullString{String: string(o), Valid: true}
			uris = append(uris, []any{string(statement.Subject), string(statement.Predicate), object, context})
		case term.Literal:
			object = sql.NullString{String: o.Encode(), Valid: true}
			literals = append(literals, []any{string(statement.Subject), string(statement.Predicate), object, context})
		default:
			return fmt.Errorf("%w %T", errUnknownObject, statement.Object)
		}
	}

	if err := store.execInsert(ctx, URITable, statementInsertColumns, uris); err != nil {
		return err
	}
	return store.execInsert(ctx, LiteralTable, statementInsertColumns, literals)
}

// execInsert executes an insert into the given table, the given columns, and the given values.
// When this would exceed limits on maximum number of query variables, multiple inserts are executed.
func (store *Store) execInsert(ctx context.Context, table string, columns []string, values [][]any) error {
	if len(values) == 0 {
		return nil
	}

	chunkSize := store.MaxQueryVar / len(columns)
	if chunkSize == 0 {
		return errInsufficientQueryVars
	}
	if store.BatchSize > 0 && store.BatchSize < chunkSize {
		chunkSize = store.BatchSize
	}

	for start := 0; start < len(values); start += chunkSize {
		end := min(start+chunkSize, len(values))

		insert := store.Flavor.NewInsertBuilder()
		insert.InsertInto(table).Cols(columns...)
		for _, v := range values[start:end] {
			insert.Values(v...)
		}

		query, args := insert.Build()
		if _, err := store.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}
