package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knakk/rdf"

	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/vocabulary/exiftool"
	"github.com/casework/case-exiftool/vocabulary/uco"
	"github.com/casework/case-exiftool/vocabulary/xsd"
)

// handlers routes each recognized property identifier to its mapping
// function. Identifiers without an entry fall through to mapFallback.
var handlers = map[string]func(*Mapper, string) error{
	exiftool.Make:  (*Mapper).mapMake,
	exiftool.Model: (*Mapper).mapModel,

	exiftool.FileSize:            (*Mapper).mapFileSize,
	exiftool.FileName:            (*Mapper).mapFileName,
	exiftool.FileModifyDate:      (*Mapper).mapFileTimestamp,
	exiftool.FileAccessDate:      (*Mapper).mapFileTimestamp,
	exiftool.FileInodeChangeDate: (*Mapper).mapFileTimestamp,
	exiftool.FilePermissions:     (*Mapper).mapFilePermissions,

	exiftool.CompositeGPSAltitude:  (*Mapper).mapCompositeGPSAxis,
	exiftool.CompositeGPSLatitude:  (*Mapper).mapCompositeGPSAxis,
	exiftool.CompositeGPSLongitude: (*Mapper).mapCompositeGPSAxis,
	exiftool.CompositeGPSPosition:  (*Mapper).mapGPSPosition,

	exiftool.GPSAltitude:     (*Mapper).mapGPSDictionary,
	exiftool.GPSAltitudeRef:  (*Mapper).mapGPSDictionary,
	exiftool.GPSLatitude:     (*Mapper).mapGPSDictionary,
	exiftool.GPSLatitudeRef:  (*Mapper).mapGPSDictionary,
	exiftool.GPSLongitude:    (*Mapper).mapGPSDictionary,
	exiftool.GPSLongitudeRef: (*Mapper).mapGPSDictionary,

	exiftool.ExifImageHeight: (*Mapper).mapImageDimension,
	exiftool.ExifImageWidth:  (*Mapper).mapImageDimension,
}

// mapMake routes the camera manufacturer through the identity resolver.
func (m *Mapper) mapMake(id string) error {
	raw, printConv := m.dumps.Pop(id)
	identity, ok := m.resolver.Resolve(m, objectString(raw), objectString(printConv))
	if !ok {
		return nil
	}
	m.g.Add(rdf.Triple{Subj: m.deviceFacet(), Pred: uco.Manufacturer, Obj: identity})
	return nil
}

func (m *Mapper) mapModel(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)
	m.g.Add(rdf.Triple{Subj: m.deviceFacet(), Pred: uco.Model, Obj: value})
	return nil
}

func (m *Mapper) mapFileSize(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)
	n, err := strconv.ParseInt(literalString(value), 10, 64)
	if err != nil {
		return fmt.Errorf("file size %q is not an integer: %w", literalString(value), err)
	}
	m.g.Add(rdf.Triple{
		Subj: m.contentDataFacet(),
		Pred: uco.SizeInBytes,
		Obj:  rdf.NewTypedLiteral(strconv.FormatInt(n, 10), xsd.Long),
	})
	return nil
}

func (m *Mapper) mapFileName(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)
	m.g.Add(rdf.Triple{Subj: m.fileFacet(), Pred: uco.FileName, Obj: value})
	return nil
}

// timestampPredicates maps the System date identifiers onto the file facet
// time properties.
var timestampPredicates = map[string]rdf.IRI{
	exiftool.FileModifyDate:      uco.ModifiedTime,
	exiftool.FileAccessDate:      uco.AccessedTime,
	exiftool.FileInodeChangeDate: uco.MetadataChangeTime,
}

// mapFileTimestamp retypes an ExifTool timestamp as xsd:dateTime, replacing
// the space separator between date and time with "T".
func (m *Mapper) mapFileTimestamp(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)
	stamp := strings.Replace(literalString(value), " ", "T", 1)
	m.g.Add(rdf.Triple{
		Subj: m.fileFacet(),
		Pred: timestampPredicates[id],
		Obj:  rdf.NewTypedLiteral(stamp, xsd.DateTime),
	})
	return nil
}

// mapFilePermissions fills the unix-permissions facet: a numeric raw mode
// under 1000 becomes permissionMode, anything else survives as a comment,
// and the print-converted rendering (e.g. "-rw-r--r--") is always a comment.
func (m *Mapper) mapFilePermissions(id string) error {
	raw, printConv := m.dumps.Pop(id)
	if raw != nil {
		s := literalString(raw)
		if mode, err := strconv.Atoi(s); err == nil && mode < 1000 {
			m.g.Add(rdf.Triple{
				Subj: m.unixPermissionsFacet(),
				Pred: uco.PermissionMode,
				Obj:  rdf.NewTypedLiteral(strconv.Itoa(mode), xsd.Integer),
			})
		} else {
			m.g.Add(rdf.Triple{Subj: m.unixPermissionsFacet(), Pred: uco.Comment, Obj: raw})
		}
	}
	if printConv != nil {
		m.g.Add(rdf.Triple{Subj: m.unixPermissionsFacet(), Pred: uco.Comment, Obj: printConv})
	}
	return nil
}

// compositeGPSAxes maps the Composite GPS identifiers onto the lat/long
// facet properties and their EXIF dictionary keys.
var compositeGPSAxes = map[string]struct {
	pred    rdf.IRI
	dictKey string
}{
	exiftool.CompositeGPSAltitude:  {uco.Altitude, "Altitude"},
	exiftool.CompositeGPSLatitude:  {uco.Latitude, "Latitude"},
	exiftool.CompositeGPSLongitude: {uco.Longitude, "Longitude"},
}

// mapCompositeGPSAxis asserts one decimal-typed coordinate on the lat/long
// facet and copies the value into the EXIF dictionary.
func (m *Mapper) mapCompositeGPSAxis(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)
	s := literalString(value)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("GPS coordinate %q is not a decimal: %w", s, err)
	}
	axis := compositeGPSAxes[id]
	m.g.Add(rdf.Triple{
		Subj: m.latLongFacet(),
		Pred: axis.pred,
		Obj:  rdf.NewTypedLiteral(s, xsd.Decimal),
	})
	m.exifDict[axis.dictKey] = value
	return nil
}

// mapGPSPosition attaches the composite position rendering as a
// human-readable label on the location object.
func (m *Mapper) mapGPSPosition(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(printConv, raw)
	m.g.Add(rdf.Triple{Subj: m.locationObject(), Pred: graph.RDFSLabel, Obj: value})
	return nil
}

// mapGPSDictionary copies an EXIF GPS-namespace value into the controlled
// dictionary, keyed by its tag name with the "GPS" prefix stripped. Its
// presence alone is enough to infer a location.
func (m *Mapper) mapGPSDictionary(id string) error {
	raw, printConv := m.dumps.Pop(id)
	m.latLongFacet()
	key := strings.TrimPrefix(strings.TrimPrefix(id, exiftool.NSGPS), "GPS")
	m.exifDict[key] = firstOf(raw, printConv)
	return nil
}

// mapImageDimension records a pixel dimension both as an EXIF dictionary
// entry and as an integer raster-picture field.
func (m *Mapper) mapImageDimension(id string) error {
	raw, printConv := m.dumps.Pop(id)
	value := firstOf(raw, printConv)

	dictKey := "Image Height"
	pred := uco.PictureHeight
	if id == exiftool.ExifImageWidth {
		dictKey = "Image Width"
		pred = uco.PictureWidth
	}
	m.exifDict[dictKey] = value

	n, err := strconv.Atoi(literalString(value))
	if err != nil {
		return fmt.Errorf("image dimension %q is not an integer: %w", literalString(value), err)
	}
	m.g.Add(rdf.Triple{
		Subj: m.rasterPictureFacet(),
		Pred: pred,
		Obj:  rdf.NewTypedLiteral(strconv.Itoa(n), xsd.Integer),
	})
	return nil
}

// mapFallback preserves unmodeled properties verbatim on the base object,
// keeping both value variants under the original predicate.
func (m *Mapper) mapFallback(id string) error {
	raw, printConv := m.dumps.Pop(id)
	pred := graph.MustIRI(id)
	if raw != nil {
		m.g.Add(rdf.Triple{Subj: m.observableObject(), Pred: pred, Obj: raw})
	}
	if printConv != nil {
		m.g.Add(rdf.Triple{Subj: m.observableObject(), Pred: pred, Obj: printConv})
	}
	return nil
}

// objectString renders a possibly-nil value as a plain string.
func objectString(o rdf.Object) string {
	if o == nil {
		return ""
	}
	return literalString(o)
}
