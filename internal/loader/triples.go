package loader

import (
	"fmt"
	"io"

	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/FAU-CDI/rdfadmin/internal/term"
	"github.com/anglo-korean/rdf"
)

// cspell:words anglo

// tripleSource reads statements from a turtle or ntriples file.
// All statements are placed into a single graph.
type tripleSource struct {
	decoder rdf.TripleDecoder
	graph   string
}

func newTripleSource(r io.Reader, format Format, graph string) *tripleSource {
	f := rdf.Turtle
	if format == NTriples {
		f = rdf.NTriples
	}
	return &tripleSource{
		decoder: rdf.NewTripleDecoder(r, f),
		graph:   graph,
	}
}

func (ts *tripleSource) Next() (store.Statement, error) {
	triple, err := ts.decoder.Decode()
	if err != nil {
		return store.Statement{}, err
	}

	subject, err := asTermURI(triple.Subj)
	if err != nil {
		return store.Statement{}, invalid(err)
	}
	predicate, err := asTermURI(triple.Pred)
	if err != nil {
		return store.Statement{}, invalid(err)
	}

	statement := store.Statement{
		Subject:   subject,
		Predicate: predicate,
		Graph:     ts.graph,
	}

	switch object := triple.Obj.(type) {
	case rdf.Literal:
		literal, err := asTypedLiteral(object)
		if err != nil {
			return store.Statement{}, invalid(err)
		}
		statement.Object = literal
	case rdf.IRI, rdf.Blank:
		uri, err := asTermURI(object)
		if err != nil {
			return store.Statement{}, invalid(err)
		}
		statement.Object = uri
	default:
		return store.Statement{}, fmt.Errorf("unsupported object %v", triple.Obj)
	}
	return statement, nil
}

// asTermURI returns the uri of an iri or blank node term.
// Blank nodes are prefixed with "_:", iris are validated.
func asTermURI(t rdf.Term) (term.URI, error) {
	if blank, ok := t.(rdf.Blank); ok {
		return term.URI("_:" + blank.String()), nil
	}
	return term.NewURI(t.String())
}

// asTypedLiteral turns an rdf literal into a literal.
// Plain strings and language-tagged strings become untyped literals.
func asTypedLiteral(object rdf.Literal) (term.Literal, error) {
	literal := term.Literal{Lexical: object.String()}
	if object.Lang() != "" {
		return literal, nil
	}

	datatype := object.DataType.String()
	if datatype == "" || datatype == string(term.XSDString) {
		return literal, nil
	}

	var err error
	literal.Datatype, err = term.NewURI(datatype)
	return literal, err
}
