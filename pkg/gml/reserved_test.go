package gml

import (
	"errors"
	"testing"
)

func TestReservedKeys(t *testing.T) {
	if got := ReservedKeys(KindVertex); len(got) != 3 {
		t.Errorf("ReservedKeys(vertex) = %v, want 3 keys", got)
	}
	if got := ReservedKeys(KindEdge); len(got) != 6 {
		t.Errorf("ReservedKeys(edge) = %v, want 6 keys", got)
	}

	keys := ReservedKeys(KindVertex)
	keys[0] = "mutated"
	if !IsReserved(KindVertex, "id") {
		t.Error("mutating ReservedKeys() result changed the reserved set")
	}
}

func TestIsReserved(t *testing.T) {
	tests := []struct {
		kind ElementKind
		key  string
		want bool
	}{
		{KindVertex, "id", true},
		{KindVertex, "label", true},
		{KindVertex, "graphics", true},
		{KindVertex, "source", false},
		{KindVertex, "weight", false},
		{KindVertex, "ID", false},
		{KindEdge, "id", true},
		{KindEdge, "source", true},
		{KindEdge, "target", true},
		{KindEdge, "label", true},
		{KindEdge, "weight", true},
		{KindEdge, "graphics", true},
		{KindEdge, "name", false},
		{KindEdge, "Weight", false},
	}

	for _, tt := range tests {
		if got := IsReserved(tt.kind, tt.key); got != tt.want {
			t.Errorf("IsReserved(%v, %q) = %v, want %v", tt.kind, tt.key, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    ElementKind
		attrs   Attributes
		wantKey string
	}{
		{"empty", KindVertex, nil, ""},
		{"free keys", KindVertex, Attributes{Attr("color", String("red")), Attr("source", Int(1))}, ""},
		{"vertex id", KindVertex, Attributes{Attr("id", Int(1))}, "id"},
		{"first conflict wins", KindEdge, Attributes{Attr("name", String("x")), Attr("target", Int(2)), Attr("id", Int(1))}, "target"},
		{"edge weight", KindEdge, Attributes{Attr("weight", Real(1))}, "weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, "elem", tt.attrs)
			if tt.wantKey == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var conflict *AttributeConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("Validate() error = %v, want *AttributeConflictError", err)
			}
			if conflict.Key != tt.wantKey || conflict.Element != "elem" || conflict.Kind != tt.kind {
				t.Errorf("Validate() = %+v, want key %q", conflict, tt.wantKey)
			}
		})
	}
}

func TestAttributeConflictErrorMessage(t *testing.T) {
	err := &AttributeConflictError{Kind: KindEdge, Element: "(v1 : v2)", Key: "source"}
	want := `edge (v1 : v2): custom attribute "source" is reserved`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
