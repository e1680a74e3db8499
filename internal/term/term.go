// Package term implements the RDF values shown in the admin: URIs and literals.
package term

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anglo-korean/rdf"
)

// cspell:words anglo

// URI represents a URI reference used as an RDF term.
type URI string

const (
	XSDString  URI = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger URI = "http://www.w3.org/2001/XMLSchema#integer"
	RDFType    URI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// ErrInvalidURI is returned when a value cannot be used as a URI.
var ErrInvalidURI = errors.New("invalid uri")

// NewURI validates value and returns it as a URI.
func NewURI(value string) (URI, error) {
	if value == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	if _, err := rdf.NewIRI(value); err != nil {
		return "", fmt.Errorf("%w %q: %s", ErrInvalidURI, value, err)
	}
	return URI(value), nil
}

// Split splits the uri at the last '#' into namespace and local name.
// When there is no '#', namespace is empty and local is the entire uri.
func (uri URI) Split() (namespace, local string) {
	value := string(uri)
	index := strings.LastIndexByte(value, '#')
	if index < 0 {
		return "", value
	}
	return value[:index], value[index+1:]
}

func (uri URI) String() string {
	return string(uri)
}

// LastSegment strips trailing slashes from label and splits it at the last '/'.
// segment holds everything after the slash, rest everything before it.
func LastSegment(label string) (segment, rest string) {
	label = strings.TrimRight(label, "/")
	index := strings.LastIndexByte(label, '/')
	if index < 0 {
		return label, ""
	}
	return label[index+1:], label[:index]
}
