// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

// WriteHandler decomposes values of one type into a tag and a
// representation. The representation is itself written with the handlers
// of the registry, so it can be another tagged value.
//
// Tags of one character are scalar types: their representation should be
// a string, or StringRep must succeed. Longer tags carry composite
// representations (arrays or maps).
type WriteHandler interface {
	Tag(v interface{}) string
	Rep(v interface{}) interface{}
	// StringRep is used when v is a map key or the format prefers strings.
	// ok is false for types that have no string form.
	StringRep(v interface{}) (s string, ok bool)
}

// VerboseWriteHandler is implemented by write handlers that want a more
// readable encoding in the JSON-verbose format.
type VerboseWriteHandler interface {
	VerboseHandler() WriteHandler
}

// ReadHandler rebuilds a value from its representation.
type ReadHandler interface {
	FromRep(rep interface{}) (interface{}, error)
}

// ReadHandlerFunc adapts a function to the ReadHandler interface.
type ReadHandlerFunc func(rep interface{}) (interface{}, error)

func (f ReadHandlerFunc) FromRep(rep interface{}) (interface{}, error) { return f(rep) }

// ArrayReadHandler is a read handler that assembles an array representation
// with its own builder instead of receiving a decoded []interface{}. The
// value returned by the builder's Complete is the decoded value.
type ArrayReadHandler interface {
	ReadHandler
	ArrayBuilder() ArrayBuilder
}

// MapReadHandler is a read handler for composite maps. When its
// representation is an array, the parser checks that the element count is
// even and feeds consecutive elements to the builder as key/value pairs.
type MapReadHandler interface {
	ReadHandler
	MapBuilder() MapBuilder
}

// DefaultHandler is consulted for tags that have no read handler.
type DefaultHandler interface {
	FromRep(tag string, rep interface{}) (interface{}, error)
}

// DefaultHandlerFunc adapts a function to the DefaultHandler interface.
type DefaultHandlerFunc func(tag string, rep interface{}) (interface{}, error)

func (f DefaultHandlerFunc) FromRep(tag string, rep interface{}) (interface{}, error) {
	return f(tag, rep)
}

// TaggedValueHandler is a DefaultHandler that keeps unknown values as
// TaggedValue, so they can be inspected or written back unchanged.
var TaggedValueHandler DefaultHandler = DefaultHandlerFunc(func(tag string, rep interface{}) (interface{}, error) {
	return TaggedValue{Tag: tag, Rep: rep}, nil
})

type funcWriteHandler struct {
	tag       string
	rep       func(interface{}) interface{}
	stringRep func(interface{}) (string, bool)
}

// NewWriteHandler returns a WriteHandler with a fixed tag. stringRep may be
// nil for types without a string form.
func NewWriteHandler(tag string, rep func(v interface{}) interface{}, stringRep func(v interface{}) (string, bool)) WriteHandler {
	return funcWriteHandler{tag: tag, rep: rep, stringRep: stringRep}
}

func (h funcWriteHandler) Tag(interface{}) string          { return h.tag }
func (h funcWriteHandler) Rep(v interface{}) interface{}   { return h.rep(v) }
func (h funcWriteHandler) StringRep(v interface{}) (string, bool) {
	if h.stringRep == nil {
		return "", false
	}
	return h.stringRep(v)
}
