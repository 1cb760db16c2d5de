// Package exiftool defines the ExifTool namespace IRIs that appear as
// property identifiers in ExifTool's RDF/XML export (-xmlFormat).
package exiftool

// Namespace base IRIs, one per ExifTool tag group.
const (
	NSComposite  = "http://ns.exiftool.ca/Composite/1.0/"
	NSEt         = "http://ns.exiftool.ca/1.0/"
	NSExifTool   = "http://ns.exiftool.ca/ExifTool/1.0/"
	NSGPS        = "http://ns.exiftool.ca/EXIF/GPS/1.0/"
	NSSystem     = "http://ns.exiftool.ca/File/System/1.0/"
	NSFile       = "http://ns.exiftool.ca/File/1.0/"
	NSIFD0       = "http://ns.exiftool.ca/EXIF/IFD0/1.0/"
	NSExifIFD    = "http://ns.exiftool.ca/EXIF/ExifIFD/1.0/"
	NSNikon      = "http://ns.exiftool.ca/MakerNotes/Nikon/1.0/"
	NSPreviewIFD = "http://ns.exiftool.ca/MakerNotes/PreviewIFD/1.0/"
	NSInteropIFD = "http://ns.exiftool.ca/EXIF/InteropIFD/1.0/"
	NSIFD1       = "http://ns.exiftool.ca/EXIF/IFD1/1.0/"
)

// Property identifiers with dedicated mapper handlers.
const (
	MIMEType = NSFile + "MIMEType"

	Make  = NSIFD0 + "Make"
	Model = NSIFD0 + "Model"

	FileSize            = NSSystem + "FileSize"
	FileName            = NSSystem + "FileName"
	FileModifyDate      = NSSystem + "FileModifyDate"
	FileAccessDate      = NSSystem + "FileAccessDate"
	FileInodeChangeDate = NSSystem + "FileInodeChangeDate"
	FilePermissions     = NSSystem + "FilePermissions"

	CompositeGPSAltitude  = NSComposite + "GPSAltitude"
	CompositeGPSLatitude  = NSComposite + "GPSLatitude"
	CompositeGPSLongitude = NSComposite + "GPSLongitude"
	CompositeGPSPosition  = NSComposite + "GPSPosition"

	GPSAltitude     = NSGPS + "GPSAltitude"
	GPSAltitudeRef  = NSGPS + "GPSAltitudeRef"
	GPSLatitude     = NSGPS + "GPSLatitude"
	GPSLatitudeRef  = NSGPS + "GPSLatitudeRef"
	GPSLongitude    = NSGPS + "GPSLongitude"
	GPSLongitudeRef = NSGPS + "GPSLongitudeRef"

	ExifImageHeight = NSExifIFD + "ExifImageHeight"
	ExifImageWidth  = NSExifIFD + "ExifImageWidth"
)

// Prefix is a namespace binding for serialized output.
type Prefix struct {
	Name string
	IRI  string
}

// PrefixBindings returns the exiftool-* prefix bindings asserted on the
// output graph so unconverted properties stay readable.
func PrefixBindings() []Prefix {
	return []Prefix{
		{"exiftool-Composite", NSComposite},
		{"exiftool-et", NSEt},
		{"exiftool-ExifTool", NSExifTool},
		{"exiftool-GPS", NSGPS},
		{"exiftool-System", NSSystem},
		{"exiftool-File", NSFile},
		{"exiftool-IFD0", NSIFD0},
		{"exiftool-ExifIFD", NSExifIFD},
		{"exiftool-Nikon", NSNikon},
		{"exiftool-PreviewIFD", NSPreviewIFD},
		{"exiftool-InteropIFD", NSInteropIFD},
		{"exiftool-IFD1", NSIFD1},
	}
}
