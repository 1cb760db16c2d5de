// Package uco defines the Unified Cyber Ontology terms the mapper asserts:
// observable object classes, facet classes, and the properties hung off them.
package uco

import "github.com/knakk/rdf"

// Namespace base IRIs.
const (
	NSCore       = "https://unifiedcyberontology.org/ontology/uco/core#"
	NSLocation   = "https://unifiedcyberontology.org/ontology/uco/location#"
	NSObservable = "https://unifiedcyberontology.org/ontology/uco/observable#"
	NSTypes      = "https://unifiedcyberontology.org/ontology/uco/types#"
	NSVocabulary = "https://unifiedcyberontology.org/ontology/uco/vocabulary#"
)

func iri(s string) rdf.IRI {
	i, err := rdf.NewIRI(s)
	if err != nil {
		panic("uco: invalid IRI " + s + ": " + err.Error())
	}
	return i
}

// Core classes and properties.
var (
	Identity     = iri(NSCore + "Identity")
	Relationship = iri(NSCore + "Relationship")

	Facets             = iri(NSCore + "facets")
	Name               = iri(NSCore + "name")
	Comment            = iri(NSCore + "comment")
	Source             = iri(NSCore + "source")
	Target             = iri(NSCore + "target")
	KindOfRelationship = iri(NSCore + "kindOfRelationship")
)

// Observable classes. Facet classes follow the pre-0.6.0 UCO naming, where
// the facet type carries no "Facet" suffix.
var (
	CyberItem = iri(NSObservable + "CyberItem")
	PDFFile   = iri(NSObservable + "PDFFile")

	FileFacet                = iri(NSObservable + "File")
	ContentDataFacet         = iri(NSObservable + "ContentData")
	DeviceFacet              = iri(NSObservable + "Device")
	EXIFFacet                = iri(NSObservable + "EXIF")
	RasterPictureFacet       = iri(NSObservable + "RasterPicture")
	UNIXFilePermissionsFacet = iri(NSObservable + "UNIXFilePermissions")
)

// Observable properties.
var (
	MimeType           = iri(NSObservable + "mimeType")
	SizeInBytes        = iri(NSObservable + "sizeInBytes")
	Manufacturer       = iri(NSObservable + "manufacturer")
	Model              = iri(NSObservable + "model")
	FileName           = iri(NSObservable + "fileName")
	ModifiedTime       = iri(NSObservable + "modifiedTime")
	AccessedTime       = iri(NSObservable + "accessedTime")
	MetadataChangeTime = iri(NSObservable + "metadataChangeTime")
	PermissionMode     = iri(NSObservable + "permissionMode")
	PictureType        = iri(NSObservable + "pictureType")
	PictureHeight      = iri(NSObservable + "pictureHeight")
	PictureWidth       = iri(NSObservable + "pictureWidth")
	Camera             = iri(NSObservable + "camera")
	ExifData           = iri(NSObservable + "exifData")
)

// Location classes and properties.
var (
	Location                = iri(NSLocation + "Location")
	LatLongCoordinatesFacet = iri(NSLocation + "LatLongCoordinates")

	Latitude  = iri(NSLocation + "latitude")
	Longitude = iri(NSLocation + "longitude")
	Altitude  = iri(NSLocation + "altitude")
)

// Types vocabulary for controlled dictionaries.
var (
	ControlledDictionary      = iri(NSTypes + "ControlledDictionary")
	ControlledDictionaryEntry = iri(NSTypes + "ControlledDictionaryEntry")
	Entry                     = iri(NSTypes + "entry")
	Key                       = iri(NSTypes + "key")
	Value                     = iri(NSTypes + "value")
)

// CyberItemRelationshipVocab is the datatype of kindOfRelationship literals.
var CyberItemRelationshipVocab = iri(NSVocabulary + "CyberItemRelationshipVocab")
