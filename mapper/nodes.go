package mapper

import (
	"github.com/knakk/rdf"

	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/vocabulary/uco"
)

// Lazy get-or-create accessors. First access creates the node, asserts its
// type triple, and links it to its owner; later accesses return the
// memoized reference, so no run emits an empty facet twice.

// NewObjectNode mints a top-level object under the base namespace and
// asserts its class. Exported for identity resolvers.
func (m *Mapper) NewObjectNode(slug string, class rdf.IRI) rdf.IRI {
	n := graph.MustIRI(m.base + m.ids.ObjectID(slug))
	m.g.Add(rdf.Triple{Subj: n, Pred: graph.RDFType, Obj: class})
	return n
}

// newFacet mints a facet blank node of the given class and links it to its
// owning object.
func (m *Mapper) newFacet(owner rdf.Subject, kind string, class rdf.IRI) rdf.Subject {
	b := graph.MustBlank(m.ids.FacetID(subjectID(owner), kind))
	m.g.Add(rdf.Triple{Subj: b, Pred: graph.RDFType, Obj: class})
	m.g.Add(rdf.Triple{Subj: owner, Pred: uco.Facets, Obj: b})
	return b
}

// observableObject returns the base output object, creating it with the
// MIME-derived slug and typing on first need.
func (m *Mapper) observableObject() rdf.Subject {
	if m.nObservable != nil {
		return m.nObservable
	}
	n := m.NewObjectNode(m.slug, uco.CyberItem)
	for _, class := range m.extraTypes {
		m.g.Add(rdf.Triple{Subj: n, Pred: graph.RDFType, Obj: class})
	}
	m.nObservable = n
	return n
}

func (m *Mapper) contentDataFacet() rdf.Subject {
	if m.nContentData == nil {
		m.nContentData = m.newFacet(m.observableObject(), "content-data", uco.ContentDataFacet)
	}
	return m.nContentData
}

func (m *Mapper) fileFacet() rdf.Subject {
	if m.nFileFacet == nil {
		m.nFileFacet = m.newFacet(m.observableObject(), "file", uco.FileFacet)
	}
	return m.nFileFacet
}

func (m *Mapper) unixPermissionsFacet() rdf.Subject {
	if m.nUnixPerms == nil {
		m.nUnixPerms = m.newFacet(m.observableObject(), "unix-permissions", uco.UNIXFilePermissionsFacet)
	}
	return m.nUnixPerms
}

func (m *Mapper) rasterPictureFacet() rdf.Subject {
	if m.nRasterPicture == nil {
		m.nRasterPicture = m.newFacet(m.observableObject(), "raster-picture", uco.RasterPictureFacet)
	}
	return m.nRasterPicture
}

// cameraObject returns the camera device object; creating it also links it
// from the raster picture facet.
func (m *Mapper) cameraObject() rdf.Subject {
	if m.nCamera != nil {
		return m.nCamera
	}
	n := m.NewObjectNode("device-", uco.CyberItem)
	m.nCamera = n
	m.g.Add(rdf.Triple{Subj: m.rasterPictureFacet(), Pred: uco.Camera, Obj: n})
	return n
}

func (m *Mapper) deviceFacet() rdf.Subject {
	if m.nDeviceFacet == nil {
		m.nDeviceFacet = m.newFacet(m.cameraObject(), "device", uco.DeviceFacet)
	}
	return m.nDeviceFacet
}

func (m *Mapper) locationObject() rdf.Subject {
	if m.nLocation == nil {
		m.nLocation = m.NewObjectNode("location-", uco.Location)
	}
	return m.nLocation
}

func (m *Mapper) latLongFacet() rdf.Subject {
	if m.nLatLong == nil {
		m.nLatLong = m.newFacet(m.locationObject(), "latlong", uco.LatLongCoordinatesFacet)
	}
	return m.nLatLong
}

// subjectID returns the stable identifier string of a node, used to derive
// deterministic sub-node identifiers.
func subjectID(s rdf.Subject) string {
	return s.String()
}

// firstOf returns the first non-nil value; raw is authoritative over
// print-converted for machine processing.
func firstOf(values ...rdf.Object) rdf.Object {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// literalString extracts the value string of a literal, or the term's
// string form for non-literals.
func literalString(o rdf.Object) string {
	if lit, ok := o.(rdf.Literal); ok {
		return lit.String()
	}
	return o.String()
}
