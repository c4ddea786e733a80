package gml

import "slices"

var (
	vertexReserved = []string{"id", "label", "graphics"}
	edgeReserved   = []string{"id", "source", "target", "label", "weight", "graphics"}
)

// ReservedKeys returns the structural keys that custom attributes of the
// given element kind must not use. The returned slice is a copy.
func ReservedKeys(kind ElementKind) []string {
	if kind == KindEdge {
		return slices.Clone(edgeReserved)
	}
	return slices.Clone(vertexReserved)
}

// IsReserved reports whether key is a structural key for kind.
// Matching is exact and case-sensitive.
func IsReserved(kind ElementKind, key string) bool {
	if kind == KindEdge {
		return slices.Contains(edgeReserved, key)
	}
	return slices.Contains(vertexReserved, key)
}

// Validate checks a custom attribute map against the reserved keys of kind.
// It returns an [*AttributeConflictError] naming the first offending key and
// the element, or nil when no key collides. Validate never drops keys.
func Validate(kind ElementKind, element string, attrs Attributes) error {
	for _, a := range attrs {
		if IsReserved(kind, a.Key) {
			return &AttributeConflictError{Kind: kind, Element: element, Key: a.Key}
		}
	}
	return nil
}
