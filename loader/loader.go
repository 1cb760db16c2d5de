// Package loader reads the two ExifTool RDF/XML property dumps (raw and
// print-converted) into predicate-keyed value maps.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/knakk/rdf"
)

// DumpPair holds the raw and print-converted property maps for one file
// inspection, plus the union of their property identifiers. Values are
// consumed with Pop; an identifier is handed out at most once.
type DumpPair struct {
	raw       map[string]rdf.Object
	printConv map[string]rdf.Object
	pending   map[string]struct{}
	source    string
}

// Load parses the given dump files. Either path may be empty, leaving that
// side's map empty; Load with two empty paths yields an empty pair (callers
// reject that upstream as a usage error).
func Load(rawPath, printConvPath string) (*DumpPair, error) {
	raw, rawSource, err := parseDump(rawPath)
	if err != nil {
		return nil, fmt.Errorf("raw dump: %w", err)
	}
	printConv, printConvSource, err := parseDump(printConvPath)
	if err != nil {
		return nil, fmt.Errorf("print-conv dump: %w", err)
	}
	pair := NewDumpPair(raw, printConv)
	pair.source = rawSource
	if pair.source == "" {
		pair.source = printConvSource
	}
	return pair, nil
}

// NewDumpPair builds a pair from pre-parsed maps. Nil maps are permitted.
func NewDumpPair(raw, printConv map[string]rdf.Object) *DumpPair {
	if raw == nil {
		raw = make(map[string]rdf.Object)
	}
	if printConv == nil {
		printConv = make(map[string]rdf.Object)
	}
	pending := make(map[string]struct{}, len(raw)+len(printConv))
	for k := range raw {
		pending[k] = struct{}{}
	}
	for k := range printConv {
		pending[k] = struct{}{}
	}
	return &DumpPair{raw: raw, printConv: printConv, pending: pending}
}

// iriScheme matches the scheme of an absolute IRI.
var iriScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// parseDump decodes one RDF/XML dump into a predicate-keyed map,
// last-write-wins on duplicate predicates. It also returns the subject IRI
// of the dump, ExifTool's rdf:about for the inspected file.
func parseDump(path string) (map[string]rdf.Object, string, error) {
	kv := make(map[string]rdf.Object)
	if path == "" {
		return kv, "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var source string
	dec := rdf.NewTripleDecoder(f, rdf.RDFXML)
	for tr, err := dec.Decode(); !errors.Is(err, io.EOF); tr, err = dec.Decode() {
		if err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", path, err)
		}
		if source == "" && tr.Subj.Type() == rdf.TermIRI {
			source = tr.Subj.String()
		}
		// The decoder surfaces the xmlns declarations on rdf:Description
		// as scheme-less pseudo-predicates (xmlnsFile, xmlnsSystem, ...).
		// They are namespace plumbing, not property identifiers.
		if !iriScheme.MatchString(tr.Pred.String()) {
			continue
		}
		kv[tr.Pred.String()] = tr.Obj
	}
	return kv, source, nil
}

// Pop removes the identifier from the pending set and returns its raw and
// print-converted values. Either may be nil; both are nil when the
// identifier was never present or was already consumed.
func (d *DumpPair) Pop(iri string) (raw, printConv rdf.Object) {
	if _, ok := d.pending[iri]; !ok {
		return nil, nil
	}
	delete(d.pending, iri)
	raw = d.raw[iri]
	printConv = d.printConv[iri]
	delete(d.raw, iri)
	delete(d.printConv, iri)
	return raw, printConv
}

// Source returns the subject IRI shared by the dumps, ExifTool's rdf:about
// for the inspected file. Empty for pairs built from pre-parsed maps.
func (d *DumpPair) Source() string {
	return d.source
}

// Has reports whether the identifier is still pending.
func (d *DumpPair) Has(iri string) bool {
	_, ok := d.pending[iri]
	return ok
}

// Pending returns the unconsumed identifiers, sorted lexicographically for
// reproducible dispatch order.
func (d *DumpPair) Pending() []string {
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of pending identifiers.
func (d *DumpPair) Len() int {
	return len(d.pending)
}
