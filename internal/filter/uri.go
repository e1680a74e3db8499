package filter

import (
	"context"
	"net/url"

	"github.com/FAU-CDI/rdfadmin/internal/term"
)

// GroupedTemplate renders choices grouped by their prefix.
const GroupedTemplate = "grouped_filter.html"

// NewURIFilter creates a filter for a column holding URIs.
//
// Choices show the local name of each uri, with the namespace as a prefix.
// Lookup values are validated as uris before being applied.
func NewURIFilter(ctx context.Context, column Column, params url.Values, source Source) (Filter, error) {
	vf, err := newValuesFilter(ctx, column, params, source)
	if err != nil {
		return nil, err
	}

	vf.template = GroupedTemplate
	vf.convert = func(value string) (any, error) {
		uri, err := term.NewURI(value)
		if err != nil {
			return nil, err
		}
		return string(uri), nil
	}
	vf.decorate = func(choice *Choice, value string) {
		choice.Prefix, choice.Display = term.URI(value).Split()
	}
	return vf, nil
}
