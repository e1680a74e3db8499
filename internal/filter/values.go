package filter

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/huandu/go-sqlbuilder"
)

const (
	lookupExact  = "__exact"
	lookupIsNull = "__isnull"
)

// lookup holds the value of a single lookup parameter.
type lookup struct {
	Key   string
	Value string
	Set   bool // was the parameter given at all?
}

func newLookup(params url.Values, key string) lookup {
	_, set := params[key]
	return lookup{Key: key, Value: params.Get(key), Set: set}
}

// True reports if the lookup was given and holds a true-ish value.
func (l lookup) True() bool {
	if !l.Set {
		return false
	}
	switch strings.ToLower(l.Value) {
	case "", "false", "0":
		return false
	}
	return true
}

// applyIsNull adds an "IS NULL" or "IS NOT NULL" condition when isnull was given.
func applyIsNull(sb *sqlbuilder.SelectBuilder, column string, isnull lookup) {
	if !isnull.Set {
		return
	}
	if isnull.True() {
		sb.Where(sb.IsNull(column))
	} else {
		sb.Where(sb.IsNotNull(column))
	}
}

// valuesFilter implements a filter offering every distinct value of a column.
// The conversion of lookup values and the decoration of choices are left to the concrete kinds.
type valuesFilter struct {
	column   Column
	template string

	exact  lookup
	isnull lookup

	values []sql.NullString

	// convert turns the raw lookup value into the value compared against the column.
	convert func(value string) (any, error)

	// decorate fills the display fields of a choice for a raw value.
	decorate func(choice *Choice, value string)
}

func newValuesFilter(ctx context.Context, column Column, params url.Values, source Source) (*valuesFilter, error) {
	values, err := source.Distinct(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("distinct values of %q: %w", column.Name, err)
	}

	path := column.LookupPath()
	return &valuesFilter{
		column: column,
		exact:  newLookup(params, path+lookupExact),
		isnull: newLookup(params, path+lookupIsNull),
		values: values,
	}, nil
}

func (vf *valuesFilter) Title() string    { return vf.column.DisplayTitle() }
func (vf *valuesFilter) Template() string { return vf.template }

func (vf *valuesFilter) Expected() []string {
	return []string{vf.exact.Key, vf.isnull.Key}
}

func (vf *valuesFilter) Apply(sb *sqlbuilder.SelectBuilder) error {
	if vf.exact.Value != "" {
		value, err := vf.convert(vf.exact.Value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrIncorrectLookup, vf.exact.Key, err)
		}
		sb.Where(sb.Equal(vf.column.Name, value))
	}
	applyIsNull(sb, vf.column.Name, vf.isnull)
	return nil
}

func (vf *valuesFilter) Choices(cl *ChangeList) iter.Seq[Choice] {
	return func(yield func(Choice) bool) {
		if !yield(Choice{
			Selected:    !vf.exact.Set && !vf.isnull.Set,
			QueryString: cl.QueryString(nil, vf.exact.Key, vf.isnull.Key),
			Display:     DisplayAll,
		}) {
			return
		}

		var includeNone bool
		for _, value := range vf.values {
			if !value.Valid {
				includeNone = true
				continue
			}

			choice := Choice{
				Selected:    vf.exact.Set && vf.exact.Value == value.String,
				QueryString: cl.QueryString(map[string]string{vf.exact.Key: value.String}, vf.isnull.Key),
			}
			vf.decorate(&choice, value.String)
			if !yield(choice) {
				return
			}
		}

		if includeNone {
			yield(Choice{
				Selected:    vf.isnull.True(),
				QueryString: cl.QueryString(map[string]string{vf.isnull.Key: "True"}, vf.exact.Key),
				Display:     DisplayNone,
			})
		}
	}
}
