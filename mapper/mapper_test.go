package mapper_test

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/identifier"
	"github.com/casework/case-exiftool/loader"
	"github.com/casework/case-exiftool/mapper"
	"github.com/casework/case-exiftool/vocabulary/exiftool"
	"github.com/casework/case-exiftool/vocabulary/uco"
	"github.com/casework/case-exiftool/vocabulary/xsd"
)

func lit(s string) rdf.Object {
	return rdf.NewTypedLiteral(s, xsd.String)
}

// runMapper maps the given raw/print-conv property maps into a fresh graph.
func runMapper(t *testing.T, raw, printConv map[string]rdf.Object, opts ...mapper.Option) *graph.Graph {
	t.Helper()
	g := graph.New()
	m := mapper.New(g, loader.NewDumpPair(raw, printConv), opts...)
	require.NoError(t, m.Run())
	return g
}

// triplesWith returns all triples with the given predicate.
func triplesWith(g *graph.Graph, pred rdf.IRI) []rdf.Triple {
	var out []rdf.Triple
	for _, tr := range g.Triples() {
		if tr.Pred.String() == pred.String() {
			out = append(out, tr)
		}
	}
	return out
}

// subjectsOfType returns the distinct subjects carrying an rdf:type
// assertion of the given class.
func subjectsOfType(g *graph.Graph, class rdf.IRI) []rdf.Subject {
	var out []rdf.Subject
	for _, tr := range g.Triples() {
		if tr.Pred.String() == graph.RDFType.String() && tr.Obj.String() == class.String() {
			out = append(out, tr.Subj)
		}
	}
	return out
}

func TestJPEGWithSize(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("image/jpeg"),
		exiftool.FileSize: lit("12345"),
	}, nil)

	items := subjectsOfType(g, uco.CyberItem)
	require.Len(t, items, 1, "exactly one base output object")
	assert.Contains(t, items[0].String(), "/picture-", "jpeg input uses the picture slug")

	sizes := triplesWith(g, uco.SizeInBytes)
	require.Len(t, sizes, 1)
	size := sizes[0].Obj.(rdf.Literal)
	assert.Equal(t, "12345", size.String())
	assert.Equal(t, xsd.Long.String(), size.DataType.String())

	mimes := triplesWith(g, uco.MimeType)
	require.Len(t, mimes, 1)
	assert.Equal(t, "image/jpeg", mimes[0].Obj.String())

	picTypes := triplesWith(g, uco.PictureType)
	require.Len(t, picTypes, 1)
	assert.Equal(t, "jpg", picTypes[0].Obj.String())

	assert.Len(t, subjectsOfType(g, uco.ContentDataFacet), 1)
	assert.Len(t, subjectsOfType(g, uco.RasterPictureFacet), 1)
	assert.Empty(t, subjectsOfType(g, uco.FileFacet), "no file facet without file metadata")
	assert.Empty(t, subjectsOfType(g, uco.Location), "no location without GPS data")
}

func TestUnsupportedMIMETypeFallsBackToFileSlug(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("video/mp4"),
	}, nil)

	items := subjectsOfType(g, uco.CyberItem)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].String(), "/file-")
	assert.Empty(t, triplesWith(g, uco.PictureType))
}

func TestPDFGetsPDFFileType(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("application/pdf"),
	}, nil)

	require.Len(t, subjectsOfType(g, uco.PDFFile), 1)
	items := subjectsOfType(g, uco.CyberItem)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].String(), "/file-")
}

func TestManufacturerIdentity(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.Make: lit("Nikon Corporation")},
		map[string]rdf.Object{exiftool.Make: lit("NIKON")},
	)

	identities := subjectsOfType(g, uco.Identity)
	require.Len(t, identities, 1, "exactly one identity node")

	names := triplesWith(g, uco.Name)
	require.Len(t, names, 1)
	assert.Equal(t, "NIKON", names[0].Obj.String(), "print-converted name preferred")

	comments := triplesWith(g, uco.Comment)
	require.Len(t, comments, 1)
	assert.Equal(t, "Nikon Corporation", comments[0].Obj.String())

	manufacturers := triplesWith(g, uco.Manufacturer)
	require.Len(t, manufacturers, 1)
	assert.Equal(t, identities[0].String(), manufacturers[0].Obj.String(),
		"device facet links to the identity node")
	assert.Len(t, subjectsOfType(g, uco.DeviceFacet), 1)
}

func TestManufacturerIdentityEqualNamesNoComment(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.Make: lit("NIKON")},
		map[string]rdf.Object{exiftool.Make: lit("NIKON")},
	)

	require.Len(t, subjectsOfType(g, uco.Identity), 1)
	assert.Empty(t, triplesWith(g, uco.Comment), "no comment when the names agree")
}

func TestModelCreatesCameraLinkedFromRasterPicture(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("image/jpeg"),
		exiftool.Model:    lit("NIKON D7000"),
	}, nil)

	models := triplesWith(g, uco.Model)
	require.Len(t, models, 1)
	assert.Equal(t, "NIKON D7000", models[0].Obj.String())

	cameras := triplesWith(g, uco.Camera)
	require.Len(t, cameras, 1, "raster picture facet links the camera object")

	// Base object plus camera object.
	assert.Len(t, subjectsOfType(g, uco.CyberItem), 2)
}

func TestUnknownIdentifierFallback(t *testing.T) {
	pred := "http://ns.exiftool.ca/Foo/1.0/Bar"
	g := runMapper(t,
		map[string]rdf.Object{pred: lit("raw-value")},
		nil,
	)

	unconverted := triplesWith(g, graph.MustIRI(pred))
	require.Len(t, unconverted, 1, "exactly one triple for a raw-only unknown identifier")
	assert.Equal(t, "raw-value", unconverted[0].Obj.String())

	items := subjectsOfType(g, uco.CyberItem)
	require.Len(t, items, 1)
	assert.Equal(t, items[0].String(), unconverted[0].Subj.String(),
		"unconverted properties attach to the base object")
}

func TestUnknownIdentifierKeepsBothVariants(t *testing.T) {
	pred := "http://ns.exiftool.ca/Foo/1.0/Bar"
	g := runMapper(t,
		map[string]rdf.Object{pred: lit("raw-value")},
		map[string]rdf.Object{pred: lit("pretty value")},
	)
	assert.Len(t, triplesWith(g, graph.MustIRI(pred)), 2)
}

func TestUnknownIdentifierEqualVariantsCollapse(t *testing.T) {
	pred := "http://ns.exiftool.ca/Foo/1.0/Bar"
	g := runMapper(t,
		map[string]rdf.Object{pred: lit("same")},
		map[string]rdf.Object{pred: lit("same")},
	)
	assert.Len(t, triplesWith(g, graph.MustIRI(pred)), 1)
}

func TestGPSCreatesLocationAndRelationship(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType:              lit("image/jpeg"),
		exiftool.CompositeGPSLatitude:  lit("45.58005"),
		exiftool.CompositeGPSLongitude: lit("-122.63665"),
		exiftool.GPSLatitudeRef:        lit("N"),
		exiftool.GPSLongitudeRef:       lit("W"),
	}, nil)

	require.Len(t, subjectsOfType(g, uco.Location), 1)
	require.Len(t, subjectsOfType(g, uco.LatLongCoordinatesFacet), 1)

	lats := triplesWith(g, uco.Latitude)
	require.Len(t, lats, 1)
	latLit := lats[0].Obj.(rdf.Literal)
	assert.Equal(t, "45.58005", latLit.String())
	assert.Equal(t, xsd.Decimal.String(), latLit.DataType.String())

	longs := triplesWith(g, uco.Longitude)
	require.Len(t, longs, 1)
	assert.Equal(t, "-122.63665", longs[0].Obj.String())

	// Derivation relationship from the location back to the base object.
	rels := subjectsOfType(g, uco.Relationship)
	require.Len(t, rels, 1)
	kinds := triplesWith(g, uco.KindOfRelationship)
	require.Len(t, kinds, 1)
	kind := kinds[0].Obj.(rdf.Literal)
	assert.Equal(t, "Extracted_From", kind.String())
	assert.Equal(t, uco.CyberItemRelationshipVocab.String(), kind.DataType.String())

	sources := triplesWith(g, uco.Source)
	targets := triplesWith(g, uco.Target)
	require.Len(t, sources, 1)
	require.Len(t, targets, 1)
	assert.Equal(t, subjectsOfType(g, uco.Location)[0].String(), sources[0].Obj.String())
	assert.Equal(t, subjectsOfType(g, uco.CyberItem)[0].String(), targets[0].Obj.String())

	// Composite coordinates and GPS refs land in the EXIF dictionary.
	require.Len(t, subjectsOfType(g, uco.EXIFFacet), 1)
	require.Len(t, subjectsOfType(g, uco.ControlledDictionary), 1)
	keys := make([]string, 0)
	for _, tr := range triplesWith(g, uco.Key) {
		keys = append(keys, tr.Obj.String())
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"Latitude", "LatitudeRef", "Longitude", "LongitudeRef"}, keys)
}

func TestGPSPositionLabelsLocation(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.CompositeGPSPosition: lit("45.58005 -122.63665")},
		map[string]rdf.Object{exiftool.CompositeGPSPosition: lit(`45 deg 34' 48.18" N, 122 deg 38' 11.94" W`)},
	)

	locations := subjectsOfType(g, uco.Location)
	require.Len(t, locations, 1)
	labels := triplesWith(g, graph.RDFSLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, `45 deg 34' 48.18" N, 122 deg 38' 11.94" W`, labels[0].Obj.String())
	require.Len(t, subjectsOfType(g, uco.Relationship), 1)
}

func TestNoGPSNoLocation(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("image/jpeg"),
		exiftool.FileSize: lit("12345"),
	}, nil)

	assert.Empty(t, subjectsOfType(g, uco.Location))
	assert.Empty(t, subjectsOfType(g, uco.Relationship))
	assert.Empty(t, subjectsOfType(g, uco.EXIFFacet))
}

func TestImageDimensions(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType:        lit("image/jpeg"),
		exiftool.ExifImageHeight: lit("2814"),
		exiftool.ExifImageWidth:  lit("4224"),
	}, nil)

	heights := triplesWith(g, uco.PictureHeight)
	require.Len(t, heights, 1)
	height := heights[0].Obj.(rdf.Literal)
	assert.Equal(t, "2814", height.String())
	assert.Equal(t, xsd.Integer.String(), height.DataType.String())

	widths := triplesWith(g, uco.PictureWidth)
	require.Len(t, widths, 1)
	assert.Equal(t, "4224", widths[0].Obj.String())

	keys := make([]string, 0)
	for _, tr := range triplesWith(g, uco.Key) {
		keys = append(keys, tr.Obj.String())
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"Image Height", "Image Width"}, keys)
	// Dimensions alone do not infer a location.
	assert.Empty(t, subjectsOfType(g, uco.Location))
}

func TestFileTimestampsAndName(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.FileName:       lit("photo.jpg"),
		exiftool.FileModifyDate: lit("2009:08:13 15:45:24-04:00"),
	}, nil)

	require.Len(t, subjectsOfType(g, uco.FileFacet), 1)

	names := triplesWith(g, uco.FileName)
	require.Len(t, names, 1)
	assert.Equal(t, "photo.jpg", names[0].Obj.String())

	modified := triplesWith(g, uco.ModifiedTime)
	require.Len(t, modified, 1)
	stamp := modified[0].Obj.(rdf.Literal)
	assert.Equal(t, "2009:08:13T15:45:24-04:00", stamp.String())
	assert.Equal(t, xsd.DateTime.String(), stamp.DataType.String())
}

func TestFilePermissions(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.FilePermissions: lit("644")},
		map[string]rdf.Object{exiftool.FilePermissions: lit("-rw-r--r--")},
	)

	require.Len(t, subjectsOfType(g, uco.UNIXFilePermissionsFacet), 1)

	modes := triplesWith(g, uco.PermissionMode)
	require.Len(t, modes, 1)
	mode := modes[0].Obj.(rdf.Literal)
	assert.Equal(t, "644", mode.String())
	assert.Equal(t, xsd.Integer.String(), mode.DataType.String())

	comments := triplesWith(g, uco.Comment)
	require.Len(t, comments, 1)
	assert.Equal(t, "-rw-r--r--", comments[0].Obj.String())
}

func TestFilePermissionsLargeModeBecomesComment(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.FilePermissions: lit("100644")},
		nil,
	)

	assert.Empty(t, triplesWith(g, uco.PermissionMode))
	comments := triplesWith(g, uco.Comment)
	require.Len(t, comments, 1)
	assert.Equal(t, "100644", comments[0].Obj.String())
}

func TestFileSizeCoercionFailureIsFatal(t *testing.T) {
	g := graph.New()
	m := mapper.New(g, loader.NewDumpPair(map[string]rdf.Object{
		exiftool.FileSize: lit("lots"),
	}, nil))
	assert.Error(t, m.Run())
}

func TestImageDimensionCoercionFailureIsFatal(t *testing.T) {
	g := graph.New()
	m := mapper.New(g, loader.NewDumpPair(map[string]rdf.Object{
		exiftool.ExifImageWidth: lit("wide"),
	}, nil))
	assert.Error(t, m.Run())
}

func TestGPSCoordinateCoercionFailureIsFatal(t *testing.T) {
	g := graph.New()
	m := mapper.New(g, loader.NewDumpPair(map[string]rdf.Object{
		exiftool.CompositeGPSLatitude: lit("north-ish"),
	}, nil))
	assert.Error(t, m.Run())
}

func TestNonLiteralDictionaryValueIsFatal(t *testing.T) {
	g := graph.New()
	m := mapper.New(g, loader.NewDumpPair(map[string]rdf.Object{
		exiftool.GPSLatitudeRef: graph.MustIRI("http://example.org/not-a-literal"),
	}, nil))
	assert.Error(t, m.Run())
}

// serializeSorted renders the graph as sorted N-Triples lines for
// isomorphism comparison.
func serializeSorted(t *testing.T, g *graph.Graph) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf, graph.FormatNTriples))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func deterministicInput() (map[string]rdf.Object, map[string]rdf.Object) {
	raw := map[string]rdf.Object{
		exiftool.MIMEType:             lit("image/jpeg"),
		exiftool.FileSize:             lit("12345"),
		exiftool.Make:                 lit("Nikon Corporation"),
		exiftool.Model:                lit("NIKON D7000"),
		exiftool.CompositeGPSLatitude: lit("45.58005"),
		exiftool.ExifImageWidth:       lit("4224"),
	}
	printConv := map[string]rdf.Object{
		exiftool.Make: lit("NIKON"),
	}
	return raw, printConv
}

func TestDeterministicRunsAreIsomorphic(t *testing.T) {
	gen := identifier.NewDeterministic(mapper.DefaultBasePrefix, "http://example.org/files/photo.jpg")

	raw1, pc1 := deterministicInput()
	first := runMapper(t, raw1, pc1, mapper.WithGenerator(gen))

	raw2, pc2 := deterministicInput()
	second := runMapper(t, raw2, pc2, mapper.WithGenerator(gen))

	assert.Equal(t, serializeSorted(t, first), serializeSorted(t, second),
		"two deterministic runs over the same dumps must produce identical graphs")
}

func TestDeterministicIDsDifferAcrossSourceFiles(t *testing.T) {
	baseObject := func(source string) string {
		g := runMapper(t,
			map[string]rdf.Object{exiftool.MIMEType: lit("image/jpeg")},
			nil,
			mapper.WithGenerator(identifier.NewDeterministic(mapper.DefaultBasePrefix, source)),
		)
		items := subjectsOfType(g, uco.CyberItem)
		require.Len(t, items, 1)
		return items[0].String()
	}

	vacation := baseObject("http://example.org/files/vacation.jpg")
	crimeScene := baseObject("http://example.org/files/crime-scene.jpg")
	assert.NotEqual(t, vacation, crimeScene,
		"deterministic identifiers must not conflate distinct source files")
}

func TestRawOnlyMatchesEmptyPrintConv(t *testing.T) {
	gen := identifier.NewDeterministic(mapper.DefaultBasePrefix, "http://example.org/files/photo.jpg")

	raw1, _ := deterministicInput()
	withNil := runMapper(t, raw1, nil, mapper.WithGenerator(gen))

	raw2, _ := deterministicInput()
	withEmpty := runMapper(t, raw2, map[string]rdf.Object{}, mapper.WithGenerator(gen))

	assert.Equal(t, serializeSorted(t, withNil), serializeSorted(t, withEmpty))
}

func TestCustomBasePrefix(t *testing.T) {
	g := runMapper(t, map[string]rdf.Object{
		exiftool.MIMEType: lit("image/jpeg"),
	}, nil, mapper.WithBasePrefix("http://warrant-4871.example.org/kb/"))

	items := subjectsOfType(g, uco.CyberItem)
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].String(), "http://warrant-4871.example.org/kb/picture-"),
		"generated identifiers live under the configured base prefix")
}

// nullResolver drops every manufacturer name.
type nullResolver struct{}

func (nullResolver) Resolve(_ *mapper.Mapper, _, _ string) (rdf.Object, bool) {
	return nil, false
}

func TestIdentityResolverSeam(t *testing.T) {
	g := runMapper(t,
		map[string]rdf.Object{exiftool.Make: lit("Nikon Corporation")},
		nil,
		mapper.WithIdentityResolver(nullResolver{}),
	)

	assert.Empty(t, subjectsOfType(g, uco.Identity))
	assert.Empty(t, triplesWith(g, uco.Manufacturer))
	assert.Empty(t, subjectsOfType(g, uco.DeviceFacet),
		"a declined manufacturer must not force the device facet into existence")
}
