// Package graph holds the output triple set and serializes it with
// namespace prefix bindings.
package graph

import "github.com/knakk/rdf"

// RDFType and RDFSLabel are the RDF(S) terms the mapper needs directly.
var (
	RDFType   = MustIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	RDFSLabel = MustIRI("http://www.w3.org/2000/01/rdf-schema#label")
)

// Prefix binds a short name to a namespace IRI for serialization.
type Prefix struct {
	Name string
	IRI  string
}

// Graph is an insertion-ordered triple collection with set semantics:
// adding a triple that is already present is a no-op.
type Graph struct {
	triples  []rdf.Triple
	seen     map[string]struct{}
	prefixes []Prefix
}

// New returns an empty graph with no prefix bindings.
func New() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Bind registers a prefix for serialization. Rebinding a name replaces
// its namespace.
func (g *Graph) Bind(name, ns string) {
	for i, p := range g.prefixes {
		if p.Name == name {
			g.prefixes[i].IRI = ns
			return
		}
	}
	g.prefixes = append(g.prefixes, Prefix{Name: name, IRI: ns})
}

// Add inserts a triple, reporting whether it was not already present.
func (g *Graph) Add(t rdf.Triple) bool {
	key := t.Serialize(rdf.NTriples)
	if _, ok := g.seen[key]; ok {
		return false
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Triples returns the triples in insertion order. The caller must not
// modify the returned slice.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Prefixes returns the bound prefixes in binding order.
func (g *Graph) Prefixes() []Prefix {
	return g.prefixes
}

// MustIRI builds an IRI term, panicking on malformed input. Intended for
// static vocabulary terms and identifiers the program itself generates.
func MustIRI(s string) rdf.IRI {
	i, err := rdf.NewIRI(s)
	if err != nil {
		panic("graph: invalid IRI " + s + ": " + err.Error())
	}
	return i
}

// MustBlank builds a blank node, panicking on a malformed label.
func MustBlank(id string) rdf.Blank {
	b, err := rdf.NewBlank(id)
	if err != nil {
		panic("graph: invalid blank node label " + id + ": " + err.Error())
	}
	return b
}
