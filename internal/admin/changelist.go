package admin

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"net/url"
	"slices"
	"strconv"

	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/huandu/go-sqlbuilder"
)

// ListPerPage is the number of rows shown on a single page.
const ListPerPage = 100

// changeList holds a single filtered and paginated listing of a model.
type changeList struct {
	Model   *Model
	Filters []renderedFilter
	Rows    []store.Row

	Total int // number of matching rows
	Page  int // current page, starting at 1
	Pages int // total number of pages

	PrevQuery string // query string of the previous page, if any
	NextQuery string // query string of the next page, if any
}

type renderedFilter struct {
	Title    string
	Template string
	Choices  []filter.Choice
}

// newChangeList filters and paginates the rows of model using the given query parameters.
// Malformed parameters result in an error wrapping [filter.ErrIncorrectLookup].
func (admin *Admin) newChangeList(ctx context.Context, model *Model, query url.Values) (*changeList, error) {
	page := 1
	if raw := query.Get(filter.PageParam); raw != "" {
		var err error
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return nil, fmt.Errorf("%w: invalid page %q", filter.ErrIncorrectLookup, raw)
		}
	}

	cl := filter.NewChangeList(query)
	params := cl.Params()

	// create all the filters, and make sure that all parameters are consumed
	remaining := cl.Params()
	filters := make([]filter.Filter, 0, len(model.ListFilter))
	for _, lf := range model.ListFilter {
		f, err := admin.newFilter(ctx, model, lf, params)
		if err != nil {
			return nil, err
		}
		for _, key := range f.Expected() {
			remaining.Del(key)
		}
		filters = append(filters, f)
	}
	if len(remaining) > 0 {
		keys := slices.Sorted(maps.Keys(remaining))
		return nil, fmt.Errorf("%w: unknown parameter %q", filter.ErrIncorrectLookup, keys[0])
	}

	apply := func(sb *sqlbuilder.SelectBuilder) error {
		for _, f := range filters {
			if err := f.Apply(sb); err != nil {
				return err
			}
		}
		return nil
	}

	result := &changeList{Model: model, Page: page}

	var err error
	result.Total, err = admin.Store.Count(ctx, model.Table, apply)
	if err != nil {
		return nil, err
	}
	result.Pages = max(1, (result.Total+ListPerPage-1)/ListPerPage)

	sb := admin.Store.Select(model.Table)
	if err := apply(sb); err != nil {
		return nil, err
	}
	sb.OrderBy(model.Table + "." + store.KeyColumn).Asc()
	sb.Limit(ListPerPage).Offset((page - 1) * ListPerPage)

	if result.Rows, err = admin.Store.Rows(ctx, sb); err != nil {
		return nil, err
	}

	if page > 1 {
		result.PrevQuery = cl.QueryString(map[string]string{filter.PageParam: strconv.Itoa(page - 1)})
	}
	if page < result.Pages {
		result.NextQuery = cl.QueryString(map[string]string{filter.PageParam: strconv.Itoa(page + 1)})
	}

	result.Filters = make([]renderedFilter, len(filters))
	for i, f := range filters {
		result.Filters[i] = renderedFilter{
			Title:    f.Title(),
			Template: f.Template(),
			Choices:  slices.Collect(f.Choices(cl)),
		}
	}

	return result, nil
}

func (admin *Admin) newFilter(ctx context.Context, model *Model, lf ListFilter, params url.Values) (filter.Filter, error) {
	column, ok := model.Column(lf.Column)
	if !ok {
		return nil, fmt.Errorf("model %q: unknown column %q", model.Name, lf.Column)
	}

	if lf.Factory != nil {
		return lf.Factory(ctx, column, params, admin.Store)
	}
	if admin.Registry == nil {
		return nil, fmt.Errorf("model %q: no registry for column %q", model.Name, lf.Column)
	}
	return admin.Registry.New(ctx, column, params, admin.Store)
}

// HTML renders the filter using its template.
func (rf renderedFilter) HTML(templates *template.Template) (template.HTML, error) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, rf.Template, rf); err != nil {
		return "", err
	}
	return template.HTML(buffer.String()), nil
}

// choiceGroup holds the choices sharing the same prefix.
type choiceGroup struct {
	Prefix  string
	Choices []filter.Choice
}

// Groups groups choices by their prefix.
// Groups are ordered by the first occurrence of their prefix, choices keep their relative order.
func (rf renderedFilter) Groups() (groups []choiceGroup) {
	index := make(map[string]int)
	for _, choice := range rf.Choices {
		i, ok := index[choice.Prefix]
		if !ok {
			i = len(groups)
			index[choice.Prefix] = i
			groups = append(groups, choiceGroup{Prefix: choice.Prefix})
		}
		groups[i].Choices = append(groups[i].Choices, choice)
	}
	return groups
}
