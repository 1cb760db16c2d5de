// Package xsd defines the XML Schema datatype IRIs used to type literals.
package xsd

import "github.com/knakk/rdf"

// Namespace is the XML Schema datatype namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

func iri(s string) rdf.IRI {
	i, err := rdf.NewIRI(s)
	if err != nil {
		panic("xsd: invalid IRI " + s + ": " + err.Error())
	}
	return i
}

var (
	String   = iri(Namespace + "string")
	Integer  = iri(Namespace + "integer")
	Long     = iri(Namespace + "long")
	Decimal  = iri(Namespace + "decimal")
	DateTime = iri(Namespace + "dateTime")
)
