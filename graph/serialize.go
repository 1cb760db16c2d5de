package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knakk/rdf"

	"github.com/casework/case-exiftool/vocabulary/xsd"
)

// Format specifies the output serialization syntax.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "json-ld"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "json-ld", "jsonld", "json":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// GuessFormat picks a serialization format from the output file extension,
// defaulting to Turtle.
func GuessFormat(filename string) Format {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	switch ext {
	case "json", "json-ld", "jsonld":
		return FormatJSONLD
	case "nt", "ntriples":
		return FormatNTriples
	case "ttl", "turtle":
		return FormatTurtle
	}
	return FormatTurtle
}

// Serialize writes the graph in the requested format.
func (g *Graph) Serialize(w io.Writer, format Format) error {
	switch format {
	case FormatTurtle:
		return g.writeTurtle(w)
	case FormatNTriples:
		return g.writeNTriples(w)
	case FormatJSONLD:
		return g.writeJSONLD(w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeNTriples delegates line formatting to the rdf library.
func (g *Graph) writeNTriples(w io.Writer) error {
	for _, t := range g.triples {
		if _, err := io.WriteString(w, t.Serialize(rdf.NTriples)); err != nil {
			return err
		}
	}
	return nil
}

// localNamePattern limits prefix compaction to safe Turtle local names.
var localNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// qname compacts an IRI against the bound prefixes, or returns it in
// angle brackets.
func (g *Graph) qname(iri string) string {
	for _, p := range g.prefixes {
		if rest, ok := strings.CutPrefix(iri, p.IRI); ok && localNamePattern.MatchString(rest) {
			return p.Name + ":" + rest
		}
	}
	return "<" + iri + ">"
}

func (g *Graph) writeTurtle(w io.Writer) error {
	var sb strings.Builder

	for _, p := range g.prefixes {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.Name, p.IRI))
	}

	for _, subj := range g.subjectOrder() {
		sb.WriteString("\n")
		sb.WriteString(g.termTurtle(subj))
		sb.WriteString("\n")

		triples := g.subjectTriples(subj)
		for i, t := range triples {
			pred := t.Pred.String()
			if pred == RDFType.String() {
				sb.WriteString("    a " + g.termTurtle(t.Obj))
			} else {
				sb.WriteString("    " + g.qname(pred) + " " + g.termTurtle(t.Obj))
			}
			if i < len(triples)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// termTurtle renders one term in Turtle syntax.
func (g *Graph) termTurtle(term rdf.Term) string {
	switch term.Type() {
	case rdf.TermBlank:
		return term.Serialize(rdf.NTriples)
	case rdf.TermIRI:
		return g.qname(term.String())
	default:
		lit := term.(rdf.Literal)
		quoted := `"` + escapeString(lit.String()) + `"`
		dt := lit.DataType.String()
		if dt == "" || dt == xsd.String.String() {
			return quoted
		}
		return quoted + "^^" + g.qname(dt)
	}
}

func (g *Graph) writeJSONLD(w io.Writer) error {
	context := make(map[string]string, len(g.prefixes))
	for _, p := range g.prefixes {
		context[p.Name] = p.IRI
	}

	nodes := make([]map[string]any, 0)
	for _, subj := range g.subjectOrder() {
		node := map[string]any{"@id": jsonldID(subj)}
		var types []string
		for _, t := range g.subjectTriples(subj) {
			pred := t.Pred.String()
			if pred == RDFType.String() {
				types = append(types, t.Obj.String())
				continue
			}
			val := jsonldObject(t.Obj)
			switch existing := node[pred].(type) {
			case nil:
				node[pred] = val
			case []any:
				node[pred] = append(existing, val)
			default:
				node[pred] = []any{existing, val}
			}
		}
		if len(types) > 0 {
			node["@type"] = types
		}
		nodes = append(nodes, node)
	}

	doc := map[string]any{
		"@context": context,
		"@graph":   nodes,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func jsonldID(subj rdf.Subject) string {
	if subj.Type() == rdf.TermBlank {
		return subj.Serialize(rdf.NTriples)
	}
	return subj.String()
}

func jsonldObject(obj rdf.Object) any {
	switch obj.Type() {
	case rdf.TermIRI:
		return map[string]any{"@id": obj.String()}
	case rdf.TermBlank:
		return map[string]any{"@id": obj.Serialize(rdf.NTriples)}
	default:
		lit := obj.(rdf.Literal)
		dt := lit.DataType.String()
		if dt == "" || dt == xsd.String.String() {
			return lit.String()
		}
		return map[string]any{"@value": lit.String(), "@type": dt}
	}
}

// subjectOrder returns distinct subjects in first-appearance order.
func (g *Graph) subjectOrder() []rdf.Subject {
	var order []rdf.Subject
	seen := make(map[string]struct{})
	for _, t := range g.triples {
		key := t.Subj.Serialize(rdf.NTriples)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, t.Subj)
	}
	return order
}

// subjectTriples returns the triples asserted on one subject, rdf:type
// assertions first, otherwise preserving insertion order.
func (g *Graph) subjectTriples(subj rdf.Subject) []rdf.Triple {
	key := subj.Serialize(rdf.NTriples)
	var types, rest []rdf.Triple
	for _, t := range g.triples {
		if t.Subj.Serialize(rdf.NTriples) != key {
			continue
		}
		if t.Pred.String() == RDFType.String() {
			types = append(types, t)
		} else {
			rest = append(rest, t)
		}
	}
	return append(types, rest...)
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
