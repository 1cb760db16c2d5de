// Package mapper is the mapping engine: it routes ExifTool property
// identifiers into UCO graph objects and facets, materializing each target
// node lazily on first need.
package mapper

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/identifier"
	"github.com/casework/case-exiftool/loader"
	"github.com/casework/case-exiftool/vocabulary/exiftool"
	"github.com/casework/case-exiftool/vocabulary/uco"
	"github.com/casework/case-exiftool/vocabulary/xsd"
)

// DefaultBasePrefix is the namespace for generated node identifiers when no
// prefix is configured.
const DefaultBasePrefix = "http://example.org/kb/"

// mimeTypeEntry drives slug selection and picture typing for one MIME type.
type mimeTypeEntry struct {
	slug        string
	pictureType string
	class       rdf.IRI // zero value: no extra class assertion
}

// mimeTypes enumerates the MIME types with a dedicated identifier slug or
// object typing. Everything else gets the generic "file-" slug.
var mimeTypes = map[string]mimeTypeEntry{
	"image/jpeg":      {slug: "picture-", pictureType: "jpg"},
	"application/pdf": {slug: "file-", class: uco.PDFFile},
}

// Mapper consolidates one dump pair into an output graph. One instance per
// conversion run; it exclusively owns the pending sets and the graph until
// Run returns.
type Mapper struct {
	g        *graph.Graph
	dumps    *loader.DumpPair
	base     string
	ids      identifier.Generator
	resolver IdentityResolver
	log      *slog.Logger

	slug        string
	pictureType string
	extraTypes  []rdf.IRI

	// Memoized nodes, each created at most once per run.
	nObservable    rdf.Subject
	nContentData   rdf.Subject
	nFileFacet     rdf.Subject
	nDeviceFacet   rdf.Subject
	nCamera        rdf.Subject
	nRasterPicture rdf.Subject
	nLocation      rdf.Subject
	nLatLong       rdf.Subject
	nUnixPerms     rdf.Subject

	exifDict map[string]rdf.Object
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithBasePrefix sets the namespace prefix for generated identifiers.
func WithBasePrefix(prefix string) Option {
	return func(m *Mapper) { m.base = prefix }
}

// WithGenerator sets the identifier generator (random or deterministic).
func WithGenerator(gen identifier.Generator) Option {
	return func(m *Mapper) { m.ids = gen }
}

// WithIdentityResolver substitutes the manufacturer-name-to-identity
// strategy.
func WithIdentityResolver(r IdentityResolver) Option {
	return func(m *Mapper) { m.resolver = r }
}

// WithLogger sets the logger for warnings and fatal-value reporting.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) { m.log = l }
}

// New builds a Mapper over the given output graph and dump pair.
func New(g *graph.Graph, dumps *loader.DumpPair, opts ...Option) *Mapper {
	m := &Mapper{
		g:        g,
		dumps:    dumps,
		base:     DefaultBasePrefix,
		ids:      identifier.NewRandom(),
		resolver: DefaultIdentityResolver{},
		log:      slog.Default(),
		slug:     "file-",
		exifDict: make(map[string]rdf.Object),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Graph returns the output graph under construction.
func (m *Mapper) Graph() *graph.Graph {
	return m.g
}

// Run performs the full mapping: namespace binding, the early MIME-type
// pass, sorted dispatch over the pending identifiers, and the deferred
// EXIF-dictionary and location-relationship derivations.
func (m *Mapper) Run() error {
	m.bindNamespaces()

	// The MIME type decides the base object's identifier slug, so it must
	// be consumed before anything forces the object into existence.
	if err := m.mapMIMEType(); err != nil {
		return err
	}

	for _, id := range m.dumps.Pending() {
		h, ok := handlers[id]
		if !ok {
			h = (*Mapper).mapFallback
		}
		if err := h(m, id); err != nil {
			return fmt.Errorf("map %s: %w", id, err)
		}
	}

	if len(m.exifDict) > 0 {
		if err := m.materializeEXIF(); err != nil {
			return err
		}
	}
	if m.nLocation != nil {
		m.materializeLocationRelationship()
	}
	return nil
}

// bindNamespaces asserts the human-readable prefixes on the output graph.
func (m *Mapper) bindNamespaces() {
	for _, p := range exiftool.PrefixBindings() {
		m.g.Bind(p.Name, p.IRI)
	}
	m.g.Bind("kb", m.base)
	m.g.Bind("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	m.g.Bind("uco-core", uco.NSCore)
	m.g.Bind("uco-location", uco.NSLocation)
	m.g.Bind("uco-observable", uco.NSObservable)
	m.g.Bind("uco-types", uco.NSTypes)
	m.g.Bind("uco-vocabulary", uco.NSVocabulary)
	m.g.Bind("xsd", "http://www.w3.org/2001/XMLSchema#")
}

// mapMIMEType runs before generic dispatch: it fixes the identifier slug,
// any extra object typing, and the picture type, then asserts the MIME type
// on the content-data facet.
func (m *Mapper) mapMIMEType() error {
	raw, printConv := m.dumps.Pop(exiftool.MIMEType)
	value := firstOf(raw, printConv)
	if value == nil {
		return nil
	}

	mime := literalString(value)
	entry, ok := mimeTypes[mime]
	if !ok {
		m.log.Warn("unsupported MIME type, using generic identifier slug", "mime_type", mime)
		entry = mimeTypeEntry{slug: "file-"}
	}
	m.slug = entry.slug
	m.pictureType = entry.pictureType
	if entry.class.String() != "" {
		m.extraTypes = append(m.extraTypes, entry.class)
	}

	m.g.Add(rdf.Triple{Subj: m.contentDataFacet(), Pred: uco.MimeType, Obj: value})

	if m.pictureType != "" {
		m.g.Add(rdf.Triple{
			Subj: m.rasterPictureFacet(),
			Pred: uco.PictureType,
			Obj:  rdf.NewTypedLiteral(m.pictureType, xsd.String),
		})
	}
	return nil
}

// materializeEXIF builds the EXIF facet and its controlled dictionary from
// the values collected during dispatch.
func (m *Mapper) materializeEXIF() error {
	exifFacet := m.newFacet(m.observableObject(), "exif", uco.EXIFFacet)
	dict, err := m.controlledDictionary(exifFacet, m.exifDict)
	if err != nil {
		return err
	}
	m.g.Add(rdf.Triple{Subj: exifFacet, Pred: uco.ExifData, Obj: dict.(rdf.Object)})
	return nil
}

// controlledDictionary materializes an ordered key/value bag as a
// ControlledDictionary sub-graph. Non-literal values are fatal: silently
// dropping forensic data is unacceptable.
func (m *Mapper) controlledDictionary(owner rdf.Subject, dict map[string]rdf.Object) (rdf.Subject, error) {
	node := graph.MustBlank(m.ids.FacetID(subjectID(owner), "controlled-dictionary"))
	m.g.Add(rdf.Triple{Subj: node, Pred: graph.RDFType, Obj: uco.ControlledDictionary})

	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := dict[key]
		if value.Type() != rdf.TermLiteral {
			m.log.Error("controlled dictionary value is not a literal",
				"key", key,
				"value", value.Serialize(rdf.NTriples))
			return nil, fmt.Errorf("controlled dictionary key %q: non-literal value %s", key, value.Serialize(rdf.NTriples))
		}
		// Dictionary keys may contain spaces; blank node labels may not.
		label := "entry-" + strings.ReplaceAll(key, " ", "-")
		entry := graph.MustBlank(m.ids.FacetID(subjectID(node), label))
		m.g.Add(rdf.Triple{Subj: node, Pred: uco.Entry, Obj: entry})
		m.g.Add(rdf.Triple{Subj: entry, Pred: graph.RDFType, Obj: uco.ControlledDictionaryEntry})
		m.g.Add(rdf.Triple{Subj: entry, Pred: uco.Key, Obj: rdf.NewTypedLiteral(key, xsd.String)})
		m.g.Add(rdf.Triple{Subj: entry, Pred: uco.Value, Obj: value})
	}
	return node, nil
}

// materializeLocationRelationship asserts that the inferred location was
// extracted from the observed item.
func (m *Mapper) materializeLocationRelationship() {
	rel := m.NewObjectNode("relationship-", uco.Relationship)
	m.g.Add(rdf.Triple{Subj: rel, Pred: uco.Source, Obj: m.nLocation.(rdf.Object)})
	m.g.Add(rdf.Triple{Subj: rel, Pred: uco.Target, Obj: m.observableObject().(rdf.Object)})
	m.g.Add(rdf.Triple{
		Subj: rel,
		Pred: uco.KindOfRelationship,
		Obj:  rdf.NewTypedLiteral("Extracted_From", uco.CyberItemRelationshipVocab),
	})
}
