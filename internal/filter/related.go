package filter

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"

	"github.com/FAU-CDI/rdfadmin/internal/term"
	"github.com/huandu/go-sqlbuilder"
)

var errNoRelation = errors.New("column has no relation")

// RelatedFilter filters a column referencing rows in another table.
type RelatedFilter struct {
	column   Column
	title    string
	template string

	exact  lookup
	isnull lookup

	choices []relatedChoice
}

type relatedChoice struct {
	Key     int64
	Display string
	Hint    string
}

// NewRelatedFilter creates a filter offering every row of the table referenced by column.
// Choices are labeled with the label column of the related table.
func NewRelatedFilter(ctx context.Context, column Column, params url.Values, source Source) (Filter, error) {
	return newRelatedFilter(ctx, column, params, source)
}

func newRelatedFilter(ctx context.Context, column Column, params url.Values, source Source) (*RelatedFilter, error) {
	if column.Related == nil {
		return nil, fmt.Errorf("%q: %w", column.Name, errNoRelation)
	}

	related, err := source.Related(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("related values of %q: %w", column.Name, err)
	}

	choices := make([]relatedChoice, len(related))
	for i, r := range related {
		choices[i] = relatedChoice{Key: r.Key, Display: r.Label}
	}

	path := column.LookupPath()
	return &RelatedFilter{
		column:   column,
		title:    column.DisplayTitle(),
		template: DefaultTemplate,

		exact:  newLookup(params, path+"__"+column.Related.Key+lookupExact),
		isnull: newLookup(params, path+lookupIsNull),

		choices: choices,
	}, nil
}

// LastSegmentRelated returns a factory for a [RelatedFilter] that only displays
// the last path segment of each label, and uses the rest of the label as a hint.
//
// name is used as the title of the filter and returned unchanged, so that it can be used in a filter list.
// If template is non-empty, it replaces the default template.
func LastSegmentRelated(name string, template string) (string, Factory) {
	return name, func(ctx context.Context, column Column, params url.Values, source Source) (Filter, error) {
		rf, err := newRelatedFilter(ctx, column, params, source)
		if err != nil {
			return nil, err
		}

		rf.title = name
		if template != "" {
			rf.template = template
		}
		for i := range rf.choices {
			rf.choices[i].Display, rf.choices[i].Hint = term.LastSegment(rf.choices[i].Display)
		}
		return rf, nil
	}
}

func (rf *RelatedFilter) Title() string    { return rf.title }
func (rf *RelatedFilter) Template() string { return rf.template }

func (rf *RelatedFilter) Expected() []string {
	return []string{rf.exact.Key, rf.isnull.Key}
}

func (rf *RelatedFilter) Apply(sb *sqlbuilder.SelectBuilder) error {
	if rf.exact.Value != "" {
		key, err := strconv.ParseInt(rf.exact.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not a valid key", ErrIncorrectLookup, rf.exact.Key, rf.exact.Value)
		}
		sb.Where(sb.Equal(rf.column.Name, key))
	}
	applyIsNull(sb, rf.column.Name, rf.isnull)
	return nil
}

func (rf *RelatedFilter) Choices(cl *ChangeList) iter.Seq[Choice] {
	return func(yield func(Choice) bool) {
		if !yield(Choice{
			Selected:    !rf.exact.Set && !rf.isnull.Set,
			QueryString: cl.QueryString(nil, rf.exact.Key, rf.isnull.Key),
			Display:     DisplayAll,
		}) {
			return
		}

		for _, choice := range rf.choices {
			key := strconv.FormatInt(choice.Key, 10)
			if !yield(Choice{
				Selected:    rf.exact.Set && rf.exact.Value == key,
				QueryString: cl.QueryString(map[string]string{rf.exact.Key: key}, rf.isnull.Key),
				Display:     choice.Display,
				Hint:        choice.Hint,
			}) {
				return
			}
		}

		if rf.column.Nullable {
			yield(Choice{
				Selected:    rf.isnull.True(),
				QueryString: cl.QueryString(map[string]string{rf.isnull.Key: "True"}, rf.exact.Key),
				Display:     DisplayNone,
			})
		}
	}
}
