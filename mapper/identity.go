package mapper

import (
	"github.com/knakk/rdf"

	"github.com/casework/case-exiftool/vocabulary/uco"
	"github.com/casework/case-exiftool/vocabulary/xsd"
)

// IdentityResolver turns a manufacturer name pair into an identity node.
// Deployments with organization-specific manufacturer normalization can
// substitute their own implementation.
type IdentityResolver interface {
	// Resolve receives the raw and print-converted manufacturer names
	// (either may be empty) and returns the node to link from the device
	// facet, or ok=false to skip the manufacturer assertion entirely.
	Resolve(m *Mapper, rawName, printConvName string) (node rdf.Object, ok bool)
}

// DefaultIdentityResolver creates one core:Identity per manufacturer,
// named by the print-converted form and carrying the raw form as a comment
// when the two differ.
type DefaultIdentityResolver struct{}

// Resolve implements IdentityResolver.
func (DefaultIdentityResolver) Resolve(m *Mapper, rawName, printConvName string) (rdf.Object, bool) {
	name := printConvName
	if name == "" {
		name = rawName
	}
	if name == "" {
		return nil, false
	}

	n := m.NewObjectNode("identity-", uco.Identity)
	m.Graph().Add(rdf.Triple{Subj: n, Pred: uco.Name, Obj: rdf.NewTypedLiteral(name, xsd.String)})
	if rawName != "" && rawName != name {
		m.Graph().Add(rdf.Triple{Subj: n, Pred: uco.Comment, Obj: rdf.NewTypedLiteral(rawName, xsd.String)})
	}
	return n, true
}
