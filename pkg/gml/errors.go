package gml

import (
	"fmt"

	errs "github.com/matzehuels/gmlexport/pkg/errors"
)

// ElementKind distinguishes vertices from edges in errors and validation.
type ElementKind int

const (
	KindVertex ElementKind = iota
	KindEdge
)

// String returns "vertex" or "edge".
func (k ElementKind) String() string {
	if k == KindEdge {
		return "edge"
	}
	return "vertex"
}

// AttributeConflictError is returned when a custom attribute key collides
// with a structural key of the element kind (see [ReservedKeys]).
type AttributeConflictError struct {
	Kind    ElementKind
	Element string // rendering of the offending vertex or edge
	Key     string
}

func (e *AttributeConflictError) Error() string {
	return fmt.Sprintf("%s %s: custom attribute %q is reserved", e.Kind, e.Element, e.Key)
}

// ErrorCode implements [errs.Coder].
func (e *AttributeConflictError) ErrorCode() errs.Code { return errs.ErrCodeAttributeConflict }

// UnsupportedAttributeTypeError is returned when a value cannot be encoded
// as a GML token: the zero [Value], a non-finite real, or a Go type that
// [ValueOf] does not map.
type UnsupportedAttributeTypeError struct {
	Key    string // attribute key, when known
	Type   string
	Detail string
}

func (e *UnsupportedAttributeTypeError) Error() string {
	msg := "unsupported attribute type " + e.Type
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Key != "" {
		msg = fmt.Sprintf("attribute %q: %s", e.Key, msg)
	}
	return msg
}

// ErrorCode implements [errs.Coder].
func (e *UnsupportedAttributeTypeError) ErrorCode() errs.Code {
	return errs.ErrCodeUnsupportedAttribute
}

// DuplicateIDError is returned when an id provider hands out the same id to
// two distinct elements of the same kind.
type DuplicateIDError struct {
	Kind   ElementKind
	ID     int
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %d for %s and %s", e.Kind, e.ID, e.First, e.Second)
}

// ErrorCode implements [errs.Coder].
func (e *DuplicateIDError) ErrorCode() errs.Code { return errs.ErrCodeDuplicateID }
