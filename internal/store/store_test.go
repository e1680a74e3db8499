package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/FAU-CDI/rdfadmin/internal/term"
	"github.com/huandu/go-sqlbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a new in-memory store with all tables created.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

var statements = []store.Statement{
	{Subject: "http://ex.org/s1", Predicate: term.RDFType, Object: term.URI("http://ex.org/onto#Person"), Graph: "http://ex.org/graphs/main/"},
	{Subject: "http://ex.org/s2", Predicate: term.RDFType, Object: term.URI("http://ex.org/onto#Place"), Graph: "http://ex.org/graphs/main/"},
	{Subject: "http://ex.org/s1", Predicate: "http://ex.org/onto#age", Object: term.Literal{Lexical: "5", Datatype: term.XSDInteger}, Graph: "http://ex.org/graphs/extra"},
	{Subject: "http://ex.org/s2", Predicate: "http://ex.org/onto#name", Object: term.Literal{Lexical: "Erlangen"}},
	{Subject: "http://ex.org/s3", Predicate: "http://ex.org/onto#unknown"},
}

func TestStore_Insert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Insert(ctx, statements...))

	uris, err := st.Count(ctx, store.URITable, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, uris)

	literals, err := st.Count(ctx, store.LiteralTable, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, literals)
}

func TestStore_Insert_Batches(t *testing.T) {
	st := newTestStore(t)
	st.BatchSize = 2

	require.NoError(t, st.Insert(context.Background(), statements...))

	count, err := st.Count(context.Background(), store.URITable, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	st.MaxQueryVar = 1
	assert.Error(t, st.Insert(context.Background(), statements...))
}

func TestStore_Graph(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.Graph(ctx, "http://ex.org/graphs/a")
	require.NoError(t, err)

	second, err := st.Graph(ctx, "http://ex.org/graphs/b")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	again, err := st.Graph(ctx, "http://ex.org/graphs/a")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestStore_Distinct(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Insert(ctx, statements...))

	columns := store.Columns(store.URITable)
	values, err := st.Distinct(ctx, columns[2])
	require.NoError(t, err)
	assert.Equal(t, []sql.NullString{
		{},
		{String: "http://ex.org/onto#Person", Valid: true},
		{String: "http://ex.org/onto#Place", Valid: true},
	}, values)

	literals, err := st.Distinct(ctx, store.Columns(store.LiteralTable)[2])
	require.NoError(t, err)
	assert.Equal(t, []sql.NullString{
		{String: "5^^^^http://www.w3.org/2001/XMLSchema#integer", Valid: true},
		{String: "Erlangen", Valid: true},
	}, literals)
}

func TestStore_Related(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Insert(ctx, statements...))

	column := store.Columns(store.URITable)[3]
	related, err := st.Related(ctx, column)
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, "http://ex.org/graphs/extra", related[0].Label)
	assert.Equal(t, "http://ex.org/graphs/main/", related[1].Label)

	_, err = st.Related(ctx, store.Columns(store.URITable)[0])
	assert.Error(t, err)
}

func TestStore_Rows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Insert(ctx, statements...))

	// filter the rows using the default filters
	var registry filter.Registry
	filter.RegisterDefaults(&registry)

	object := store.Columns(store.URITable)[2]
	f, err := registry.New(ctx, object, map[string][]string{"object__exact": {"http://ex.org/onto#Place"}}, st)
	require.NoError(t, err)

	sb := st.Select(store.URITable)
	require.NoError(t, f.Apply(sb))

	rows, err := st.Rows(ctx, sb)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/s2", rows[0].Subject)
	assert.Equal(t, sql.NullString{String: "http://ex.org/graphs/main/", Valid: true}, rows[0].Context)

	count, err := st.Count(ctx, store.URITable, func(sb *sqlbuilder.SelectBuilder) error { return f.Apply(sb) })
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// rows without a graph
	graph := store.Columns(store.URITable)[3]
	f, err = registry.New(ctx, graph, map[string][]string{"context__isnull": {"True"}}, st)
	require.NoError(t, err)

	sb = st.Select(store.URITable)
	require.NoError(t, f.Apply(sb))

	rows, err = st.Rows(ctx, sb)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/s3", rows[0].Subject)
	assert.False(t, rows[0].Object.Valid)
	assert.False(t, rows[0].Context.Valid)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := store.Open("postgres", "")
	assert.Error(t, err)
}
