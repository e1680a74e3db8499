package term

import (
	"strings"
)

// LiteralDelimiter separates lexical form and datatype in an encoded literal.
//
// A lexical form containing the delimiter cannot be decoded unambiguously.
const LiteralDelimiter = "^^^^"

// Literal is an RDF literal with an optional datatype.
type Literal struct {
	Lexical  string
	Datatype URI // empty for untyped literals
}

// Typed reports if the literal carries a datatype.
func (literal Literal) Typed() bool {
	return literal.Datatype != ""
}

// Encode encodes literal as "lexical^^^^datatype", or only "lexical" when untyped.
func (literal Literal) Encode() string {
	if !literal.Typed() {
		return literal.Lexical
	}
	return literal.Lexical + LiteralDelimiter + string(literal.Datatype)
}

func (literal Literal) String() string {
	return literal.Encode()
}

// splitLiteral splits an encoded literal on every delimiter.
// Only the first two parts are significant.
func splitLiteral(value string) (lexical, datatype string) {
	parts := strings.Split(value, LiteralDelimiter)
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// DecodeLiteral decodes a literal produced by [Literal.Encode] without validating the datatype.
// An empty datatype segment yields an untyped literal.
func DecodeLiteral(value string) Literal {
	lexical, datatype := splitLiteral(value)
	return Literal{Lexical: lexical, Datatype: URI(datatype)}
}

// ParseLiteral is like [DecodeLiteral], but validates the datatype using [NewURI].
func ParseLiteral(value string) (Literal, error) {
	literal := DecodeLiteral(value)
	if !literal.Typed() {
		return literal, nil
	}

	datatype, err := NewURI(string(literal.Datatype))
	if err != nil {
		return Literal{}, err
	}
	literal.Datatype = datatype
	return literal, nil
}

// DisplayLiteral returns the text shown for an encoded literal.
// Typed literals are shown in full, untyped ones as their lexical form.
func DisplayLiteral(value string) string {
	lexical, datatype := splitLiteral(value)
	if datatype != "" {
		return value
	}
	return lexical
}
