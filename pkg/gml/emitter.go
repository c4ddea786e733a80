package gml

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	indentUnit = "\t"
	newline    = "\n"
)

// emitter writes GML lines into an in-memory buffer. Nesting depth is
// tracked by open/close; each level indents by one tab.
type emitter struct {
	buf   bytes.Buffer
	depth int
}

func (e *emitter) line(s string) {
	e.buf.WriteString(strings.Repeat(indentUnit, e.depth))
	e.buf.WriteString(s)
	e.buf.WriteString(newline)
}

// open starts a composite block: the tag on its own line, then "[".
func (e *emitter) open(tag string) {
	e.line(tag)
	e.line("[")
	e.depth++
}

func (e *emitter) close() {
	e.depth--
	e.line("]")
}

func (e *emitter) int(key string, i int) {
	e.line(key + " " + strconv.Itoa(i))
}

func (e *emitter) str(key, s string) {
	e.line(key + " " + quote(s))
}

func (e *emitter) value(key string, v Value) error {
	tok, err := v.encode()
	if err != nil {
		if ue, ok := err.(*UnsupportedAttributeTypeError); ok {
			ue.Key = key
		}
		return err
	}
	e.line(key + " " + tok)
	return nil
}

func (e *emitter) attributes(attrs Attributes) error {
	for _, a := range attrs {
		if err := e.value(a.Key, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// block writes attrs inside a nested tag block.
func (e *emitter) block(tag string, attrs Attributes) error {
	e.open(tag)
	if err := e.attributes(attrs); err != nil {
		return err
	}
	e.close()
	return nil
}

func (e *emitter) Bytes() []byte { return e.buf.Bytes() }
