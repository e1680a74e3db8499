package loader

import (
	"fmt"
	"io"

	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/FAU-CDI/rdfadmin/internal/term"
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// quadSource reads statements from an nquads file
type quadSource struct {
	reader *nquads.Reader
}

func newQuadSource(r io.Reader) *quadSource {
	// raw mode keeps typed literals as they are, instead of converting them to native values
	return &quadSource{reader: nquads.NewReader(r, true)}
}

func (qs *quadSource) Next() (store.Statement, error) {
	for {
		value, err := qs.reader.ReadQuad()
		if err != nil {
			return store.Statement{}, err
		}

		subject, sOK, err := asURI(value.Subject)
		if err != nil {
			return store.Statement{}, invalid(err)
		}
		predicate, pOK, err := asURI(value.Predicate)
		if err != nil {
			return store.Statement{}, invalid(err)
		}
		if !(sOK && pOK) {
			continue
		}

		var graph string
		if value.Label != nil {
			label, ok, err := asURI(value.Label)
			if err != nil {
				return store.Statement{}, invalid(err)
			}
			if !ok {
				return store.Statement{}, fmt.Errorf("unsupported graph label %v", value.Label)
			}
			graph = string(label)
		}

		statement := store.Statement{
			Subject:   subject,
			Predicate: predicate,
			Graph:     graph,
		}

		object, ok, err := asURI(value.Object)
		switch {
		case err != nil:
			return store.Statement{}, invalid(err)
		case ok:
			statement.Object = object
		default:
			literal, err := asLiteral(value.Object)
			if err != nil {
				return store.Statement{}, invalid(err)
			}
			statement.Object = literal
		}
		return statement, nil
	}
}

// asURI turns iris and blank nodes into a uri.
// ok is false for other values, err is non-nil for iris that are not valid uris.
func asURI(value quad.Value) (uri term.URI, ok bool, err error) {
	switch datum := value.(type) {
	case quad.IRI:
		uri, err = term.NewURI(string(datum))
		return uri, err == nil, err
	case quad.BNode:
		return term.URI(datum.String()), true, nil
	default:
		return "", false, nil
	}
}

// asLiteral turns a non-uri value into a literal.
// Language tags are not retained.
func asLiteral(value quad.Value) (term.Literal, error) {
	switch datum := value.(type) {
	case quad.TypedString:
		datatype, err := term.NewURI(string(datum.Type))
		if err != nil {
			return term.Literal{}, err
		}
		return term.Literal{Lexical: string(datum.Value), Datatype: datatype}, nil
	case quad.LangString:
		return term.Literal{Lexical: string(datum.Value)}, nil
	case quad.String:
		return term.Literal{Lexical: string(datum)}, nil
	default:
		return term.Literal{Lexical: fmt.Sprint(value.Native())}, nil
	}
}
