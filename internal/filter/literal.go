package filter

import (
	"context"
	"net/url"

	"github.com/FAU-CDI/rdfadmin/internal/term"
)

// DefaultTemplate renders a plain list of choices.
const DefaultTemplate = "filter.html"

// NewLiteralFilter creates a filter for a column holding encoded literals.
//
// A lookup value of the form "lexical^^^^datatype" is turned into a typed literal,
// anything else (including an empty datatype) into an untyped literal.
func NewLiteralFilter(ctx context.Context, column Column, params url.Values, source Source) (Filter, error) {
	vf, err := newValuesFilter(ctx, column, params, source)
	if err != nil {
		return nil, err
	}

	vf.template = DefaultTemplate
	vf.convert = func(value string) (any, error) {
		literal, err := term.ParseLiteral(value)
		if err != nil {
			return nil, err
		}
		return literal.Encode(), nil
	}
	vf.decorate = func(choice *Choice, value string) {
		choice.Display = term.DisplayLiteral(value)
	}
	return vf, nil
}
