// Package store implements an sql database holding RDF statements.
//
// Statements are split into two tables, depending on whether their object is a uri or a literal.
// Literals are stored in their encoded form, see [term.Literal.Encode].
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/FAU-CDI/rdfadmin/internal/term"
	"github.com/huandu/go-sqlbuilder"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

// cspell:words glebarez

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

const (
	sqliteMaxQueryVar = 32766 // see https://www.sqlite.org/limits.html
	mysqlMaxQueryVar  = 65535
	defaultBatchSize  = 1000
)

var errUnknownDriver = errors.New("unknown driver")

// Store holds RDF statements inside an sql database.
type Store struct {
	DB     *sql.DB
	Flavor sqlbuilder.Flavor

	BatchSize   int // maximum number of rows per insert
	MaxQueryVar int // maximum number of query variables (overrides BatchSize)

	graphLock sync.Mutex
	graphs    map[string]int64 // cached ids of named graphs
}

// Open opens a store using the given driver and data source name.
// driver must be one of [DriverSQLite] or [DriverMySQL].
func Open(driver, dsn string) (*Store, error) {
	store := &Store{BatchSize: defaultBatchSize}

	switch driver {
	case DriverSQLite:
		store.Flavor = sqlbuilder.SQLite
		store.MaxQueryVar = sqliteMaxQueryVar
	case DriverMySQL:
		store.Flavor = sqlbuilder.MySQL
		store.MaxQueryVar = mysqlMaxQueryVar
	default:
		return nil, fmt.Errorf("%w %q", errUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	// every connection to an in-memory sqlite database sees a different database
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	store.DB = db
	return store, nil
}

// Close closes the underlying database.
func (store *Store) Close() error {
	if store == nil || store.DB == nil {
		return nil
	}
	return store.DB.Close()
}

// Statement is a single RDF statement.
type Statement struct {
	Subject   term.URI
	Predicate term.URI

	// Object is either a [term.URI], a [term.Literal] or nil.
	// A nil object is stored as a uri statement with a NULL object.
	Object any

	// Graph is the identifier of the named graph, empty for the default graph.
	Graph string
}

// Migrate creates all tables unless they already exist.
func (store *Store) Migrate(ctx context.Context) error {
	primary := "INTEGER PRIMARY KEY"
	if store.Flavor == sqlbuilder.MySQL {
		primary = "INTEGER PRIMARY KEY AUTO_INCREMENT"
	}

	graphs := store.Flavor.NewCreateTableBuilder().CreateTable(GraphTable).IfNotExists()
	graphs.Define(KeyColumn, primary)
	graphs.Define(IdentifierColumn, "TEXT", "NOT NULL")

	tables := []*sqlbuilder.CreateTableBuilder{graphs}
	for _, name := range []string{URITable, LiteralTable} {
		table := store.Flavor.NewCreateTableBuilder().CreateTable(name).IfNotExists()
		table.Define(KeyColumn, primary)
		table.Define(SubjectColumn, "TEXT", "NOT NULL")
		table.Define(PredicateColumn, "TEXT", "NOT NULL")
		table.Define(ObjectColumn, "TEXT")
		table.Define(ContextColumn, "INTEGER")
		tables = append(tables, table)
	}

	for _, table := range tables {
		query, args := table.Build()
		if _, err := store.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
