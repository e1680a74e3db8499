package filter_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"testing"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/huandu/go-sqlbuilder"
)

// staticSource is a source returning fixed values.
type staticSource struct {
	values  []sql.NullString
	related []filter.RelatedChoice
}

func (ss staticSource) Distinct(ctx context.Context, column filter.Column) ([]sql.NullString, error) {
	return ss.values, nil
}

func (ss staticSource) Related(ctx context.Context, column filter.Column) ([]filter.RelatedChoice, error) {
	return ss.related, nil
}

func valid(values ...string) []sql.NullString {
	result := make([]sql.NullString, len(values))
	for i, v := range values {
		result[i] = sql.NullString{String: v, Valid: true}
	}
	return result
}

var (
	uriColumn = filter.Column{
		Table: "uri_statement",
		Name:  "object",
		Kind:  filter.KindURI,
	}
	literalColumn = filter.Column{
		Table: "literal_statement",
		Name:  "object",
		Kind:  filter.KindLiteral,
	}
	contextColumn = filter.Column{
		Table:    "uri_statement",
		Name:     "context_id",
		Path:     "context",
		Kind:     filter.KindRelated,
		Nullable: true,
		Related:  &filter.Relation{Table: "named_graph", Key: "id", Label: "identifier"},
	}
)

func newFilter(t *testing.T, factory filter.Factory, column filter.Column, query string, source filter.Source) (filter.Filter, *filter.ChangeList) {
	t.Helper()

	params, err := url.ParseQuery(query)
	if err != nil {
		t.Fatal(err)
	}
	f, err := factory(context.Background(), column, params, source)
	if err != nil {
		t.Fatal(err)
	}
	return f, filter.NewChangeList(params)
}

func applied(t *testing.T, f filter.Filter) (string, []any, error) {
	t.Helper()

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("*").From("statement")
	if err := f.Apply(sb); err != nil {
		return "", nil, err
	}
	query, args := sb.Build()
	return query, args, nil
}

func ExampleNewURIFilter() {
	source := staticSource{values: valid("http://ex.org/a#X", "http://ex.org/a#Y", "urn:plain")}
	params := url.Values{}

	f, err := filter.NewURIFilter(context.Background(), uriColumn, params, source)
	if err != nil {
		panic(err)
	}

	for choice := range f.Choices(filter.NewChangeList(params)) {
		fmt.Printf("%q %q %v\n", choice.Prefix, choice.Display, choice.Selected)
	}

	// Output: "" "All" true
	// "http://ex.org/a" "X" false
	// "http://ex.org/a" "Y" false
	// "" "urn:plain" false
}

func ExampleNewLiteralFilter() {
	source := staticSource{values: valid("5^^^^http://www.w3.org/2001/XMLSchema#integer", "hello")}
	params := url.Values{}

	f, err := filter.NewLiteralFilter(context.Background(), literalColumn, params, source)
	if err != nil {
		panic(err)
	}

	for choice := range f.Choices(filter.NewChangeList(params)) {
		fmt.Println(choice.Display)
	}

	// Output: All
	// 5^^^^http://www.w3.org/2001/XMLSchema#integer
	// hello
}

func TestURIFilter_Choices(t *testing.T) {
	source := staticSource{values: append(valid("http://ex.org/a#X"), sql.NullString{})}

	tests := []struct {
		name  string
		query string
		want  []filter.Choice
	}{
		{
			name:  "nothing selected",
			query: "",
			want: []filter.Choice{
				{Selected: true, QueryString: "?", Display: "All"},
				{QueryString: "?object__exact=http%3A%2F%2Fex.org%2Fa%23X", Display: "X", Prefix: "http://ex.org/a"},
				{QueryString: "?object__isnull=True", Display: "(None)"},
			},
		},
		{
			name:  "value selected",
			query: "object__exact=http%3A%2F%2Fex.org%2Fa%23X&other=1",
			want: []filter.Choice{
				{QueryString: "?other=1", Display: "All"},
				{Selected: true, QueryString: "?object__exact=http%3A%2F%2Fex.org%2Fa%23X&other=1", Display: "X", Prefix: "http://ex.org/a"},
				{QueryString: "?object__isnull=True&other=1", Display: "(None)"},
			},
		},
		{
			name:  "null selected",
			query: "object__isnull=True",
			want: []filter.Choice{
				{QueryString: "?", Display: "All"},
				{QueryString: "?object__exact=http%3A%2F%2Fex.org%2Fa%23X", Display: "X", Prefix: "http://ex.org/a"},
				{Selected: true, QueryString: "?object__isnull=True", Display: "(None)"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, cl := newFilter(t, filter.NewURIFilter, uriColumn, tt.query, source)
			got := slices.Collect(f.Choices(cl))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Choices() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestValuesFilter_NoNullChoice(t *testing.T) {
	tests := []struct {
		name    string
		factory filter.Factory
		column  filter.Column
		values  []sql.NullString
	}{
		{"uri", filter.NewURIFilter, uriColumn, valid("http://ex.org/a#X")},
		{"literal", filter.NewLiteralFilter, literalColumn, valid("5^^^^http://www.w3.org/2001/XMLSchema#integer", "hello")},
		{"literal empty", filter.NewLiteralFilter, literalColumn, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, cl := newFilter(t, tt.factory, tt.column, "", staticSource{values: tt.values})

			var count int
			for choice := range f.Choices(cl) {
				count++
				if choice.Display == filter.DisplayNone {
					t.Errorf("Choices() offered a null choice without null values")
				}
			}
			if want := len(tt.values) + 1; count != want {
				t.Errorf("Choices() yielded %d choices, want %d", count, want)
			}
		})
	}
}

func TestURIFilter_Apply(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantQuery string
		wantArgs  []any
		wantErr   bool
	}{
		{"no parameters", "", "SELECT * FROM statement", nil, false},
		{"empty value", "object__exact=", "SELECT * FROM statement", nil, false},
		{"exact", "object__exact=http%3A%2F%2Fex.org%2Fa%23X", "SELECT * FROM statement WHERE object = ?", []any{"http://ex.org/a#X"}, false},
		{"isnull", "object__isnull=True", "SELECT * FROM statement WHERE object IS NULL", nil, false},
		{"not isnull", "object__isnull=False", "SELECT * FROM statement WHERE object IS NOT NULL", nil, false},
		{"invalid uri", "object__exact=not+a+uri", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFilter(t, filter.NewURIFilter, uriColumn, tt.query, staticSource{})
			gotQuery, gotArgs, err := applied(t, f)
			if tt.wantErr {
				if !errors.Is(err, filter.ErrIncorrectLookup) {
					t.Fatalf("Apply() error = %v, want ErrIncorrectLookup", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("Apply() query = %q, want %q", gotQuery, tt.wantQuery)
			}
			if len(gotArgs) != 0 || len(tt.wantArgs) != 0 {
				if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
					t.Errorf("Apply() args = %v, want %v", gotArgs, tt.wantArgs)
				}
			}
		})
	}
}

func TestLiteralFilter_Apply(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantArgs []any
		wantErr  bool
	}{
		{"typed", "5^^^^http://www.w3.org/2001/XMLSchema#integer", []any{"5^^^^http://www.w3.org/2001/XMLSchema#integer"}, false},
		{"untyped", "hello", []any{"hello"}, false},
		{"empty datatype", "hello^^^^", []any{"hello"}, false},
		{"invalid datatype", "hello^^^^not a uri", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{"object__exact": {tt.value}}.Encode()
			f, _ := newFilter(t, filter.NewLiteralFilter, literalColumn, query, staticSource{})

			gotQuery, gotArgs, err := applied(t, f)
			if tt.wantErr {
				if !errors.Is(err, filter.ErrIncorrectLookup) {
					t.Fatalf("Apply() error = %v, want ErrIncorrectLookup", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if want := "SELECT * FROM statement WHERE object = ?"; gotQuery != want {
				t.Errorf("Apply() query = %q, want %q", gotQuery, want)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("Apply() args = %v, want %v", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestLiteralFilter_Choices(t *testing.T) {
	source := staticSource{values: append(valid("a^^^^", "b^^^^http://ex.org/t"), sql.NullString{})}
	f, cl := newFilter(t, filter.NewLiteralFilter, literalColumn, "object__exact=a%5E%5E%5E%5E", source)

	got := slices.Collect(f.Choices(cl))
	want := []filter.Choice{
		{QueryString: "?", Display: "All"},
		{Selected: true, QueryString: "?object__exact=a%5E%5E%5E%5E", Display: "a"},
		{QueryString: "?object__exact=b%5E%5E%5E%5Ehttp%3A%2F%2Fex.org%2Ft", Display: "b^^^^http://ex.org/t"},
		{QueryString: "?object__isnull=True", Display: "(None)"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Choices() = %#v, want %#v", got, want)
	}
	if f.Template() != filter.DefaultTemplate {
		t.Errorf("Template() = %q, want %q", f.Template(), filter.DefaultTemplate)
	}
}

func TestLastSegmentRelated(t *testing.T) {
	source := staticSource{related: []filter.RelatedChoice{
		{Key: 1, Label: "http://ex.org/graphs/main/"},
		{Key: 2, Label: "extra"},
	}}

	name, factory := filter.LastSegmentRelated("Context", "custom.html")
	if name != "Context" {
		t.Errorf("LastSegmentRelated() name = %q", name)
	}

	f, cl := newFilter(t, factory, contextColumn, "context__id__exact=1", source)
	if f.Title() != "Context" || f.Template() != "custom.html" {
		t.Errorf("Title() = %q, Template() = %q", f.Title(), f.Template())
	}

	got := slices.Collect(f.Choices(cl))
	want := []filter.Choice{
		{QueryString: "?", Display: "All"},
		{Selected: true, QueryString: "?context__id__exact=1", Display: "main", Hint: "http://ex.org/graphs"},
		{QueryString: "?context__id__exact=2", Display: "extra"},
		{QueryString: "?context__isnull=True", Display: "(None)"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Choices() = %#v, want %#v", got, want)
	}

	gotQuery, gotArgs, err := applied(t, f)
	if err != nil {
		t.Fatal(err)
	}
	if want := "SELECT * FROM statement WHERE context_id = ?"; gotQuery != want {
		t.Errorf("Apply() query = %q, want %q", gotQuery, want)
	}
	if !reflect.DeepEqual(gotArgs, []any{int64(1)}) {
		t.Errorf("Apply() args = %v", gotArgs)
	}
}

func TestRelatedFilter(t *testing.T) {
	source := staticSource{related: []filter.RelatedChoice{{Key: 1, Label: "http://ex.org/graphs/main"}}}

	column := contextColumn
	column.Nullable = false

	f, cl := newFilter(t, filter.NewRelatedFilter, column, "", source)
	got := slices.Collect(f.Choices(cl))
	want := []filter.Choice{
		{Selected: true, QueryString: "?", Display: "All"},
		{QueryString: "?context__id__exact=1", Display: "http://ex.org/graphs/main"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Choices() = %#v, want %#v", got, want)
	}

	f, _ = newFilter(t, filter.NewRelatedFilter, column, "context__id__exact=abc", source)
	if _, _, err := applied(t, f); !errors.Is(err, filter.ErrIncorrectLookup) {
		t.Errorf("Apply() error = %v, want ErrIncorrectLookup", err)
	}

	if _, err := filter.NewRelatedFilter(context.Background(), uriColumn, nil, source); err == nil {
		t.Error("NewRelatedFilter() on a column without relation did not fail")
	}
}

func TestRegistry(t *testing.T) {
	var registry filter.Registry
	filter.RegisterDefaults(&registry)

	for _, column := range []filter.Column{uriColumn, literalColumn, contextColumn} {
		if _, err := registry.New(context.Background(), column, nil, staticSource{}); err != nil {
			t.Errorf("New(%s) error = %v", column.Kind, err)
		}
	}

	if _, err := registry.New(context.Background(), filter.Column{Name: "subject", Kind: filter.KindText}, nil, staticSource{}); err == nil {
		t.Error("New() for an unregistered kind did not fail")
	}

	// a later registration takes priority
	var called bool
	registry.Register(filter.KindURI, func(ctx context.Context, column filter.Column, params url.Values, source filter.Source) (filter.Filter, error) {
		called = true
		return filter.NewLiteralFilter(ctx, column, params, source)
	})
	f, err := registry.New(context.Background(), uriColumn, nil, staticSource{})
	if err != nil || !called {
		t.Fatalf("New() did not use the overriding factory: %v", err)
	}
	if f.Template() != filter.DefaultTemplate {
		t.Errorf("Template() = %q", f.Template())
	}
}

func TestChangeList_QueryString(t *testing.T) {
	cl := filter.NewChangeList(url.Values{
		"p":                  {"3"},
		"object__exact":      {"x"},
		"object__isnull":     {"True"},
		"predicate__exact":   {"y"},
		"context__id__exact": {"1"},
	})

	tests := []struct {
		set    map[string]string
		remove []string
		want   string
	}{
		{nil, nil, "?context__id__exact=1&object__exact=x&object__isnull=True&predicate__exact=y"},
		{nil, []string{"object__"}, "?context__id__exact=1&predicate__exact=y"},
		{map[string]string{"object__exact": "z"}, []string{"object__isnull"}, "?context__id__exact=1&object__exact=z&predicate__exact=y"},
		{map[string]string{"context__isnull": "True"}, []string{"context__id__exact", "object", "predicate"}, "?context__isnull=True"},
	}
	for _, tt := range tests {
		if got := cl.QueryString(tt.set, tt.remove...); got != tt.want {
			t.Errorf("QueryString(%v, %v) = %q, want %q", tt.set, tt.remove, got, tt.want)
		}
	}

	if params := cl.Params(); params.Has("p") {
		t.Error("Params() retained the page parameter")
	}
}
