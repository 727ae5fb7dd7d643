// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"reflect"

	"github.com/pkg/errors"
)

// groundTags are decoded by the parser itself or by handlers that must not
// be replaced.
var groundTags = map[string]struct{}{
	"_": {}, "s": {}, "?": {}, "i": {}, "d": {}, "b": {}, "'": {}, "array": {}, "map": {},
}

type keyClass uint8

const (
	classExact keyClass = iota
	classCapability
	classKind
)

// TypeKey identifies the values a write handler applies to. It is created
// with TypeOf, Implementing or OfKind.
type TypeKey struct {
	class keyClass
	typ   reflect.Type
	kind  reflect.Kind
}

// TypeOf matches values of exactly the dynamic type of v. TypeOf(nil)
// matches nil.
func TypeOf(v interface{}) TypeKey {
	return TypeKey{class: classExact, typ: reflect.TypeOf(v)}
}

// Implementing matches values whose type implements an interface, given as
// a nil pointer to it: Implementing((*fmt.Stringer)(nil)).
func Implementing(ifacePtr interface{}) TypeKey {
	t := reflect.TypeOf(ifacePtr)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		panic("transit: Implementing needs a nil pointer to an interface type")
	}
	return TypeKey{class: classCapability, typ: t.Elem()}
}

// OfKind matches all values of a reflect.Kind, e.g. named integer types.
func OfKind(k reflect.Kind) TypeKey {
	return TypeKey{class: classKind, kind: k}
}

func (k TypeKey) String() string {
	switch k.class {
	case classCapability:
		return "implementing " + k.typ.String()
	case classKind:
		return "kind " + k.kind.String()
	}
	if k.typ == nil {
		return "nil"
	}
	return k.typ.String()
}

type capability struct {
	iface   reflect.Type
	handler WriteHandler
}

// Registry maps Go types to write handlers and tags to read handlers.
//
// Write lookup is a fixed priority search: the exact dynamic type first,
// then registered capabilities (interfaces) in registration order, then
// the value's kind. Registering a key or tag that already has a handler
// replaces it, keeping its original position.
//
// A Registry is not safe for concurrent mutation. Readers and Writers take
// a private copy when they are created.
type Registry struct {
	exact        map[reflect.Type]WriteHandler
	capabilities []capability
	kinds        map[reflect.Kind]WriteHandler

	read map[string]ReadHandler
	dflt DefaultHandler
}

// NewRegistry returns a registry holding the default handlers for the
// ground and extension types of this package.
func NewRegistry() *Registry {
	r := newEmptyRegistry()
	registerDefaultWriteHandlers(r)
	for tag, h := range defaultReadHandlers() {
		r.read[tag] = h
	}
	return r
}

func newEmptyRegistry() *Registry {
	return &Registry{
		exact: make(map[reflect.Type]WriteHandler),
		kinds: make(map[reflect.Kind]WriteHandler),
		read:  make(map[string]ReadHandler),
	}
}

// Clone returns an independent copy of r. Handlers are shared, they carry
// no per-call state.
func (r *Registry) Clone() *Registry {
	c := newEmptyRegistry()
	for t, h := range r.exact {
		c.exact[t] = h
	}
	c.capabilities = append(c.capabilities, r.capabilities...)
	for k, h := range r.kinds {
		c.kinds[k] = h
	}
	for tag, h := range r.read {
		c.read[tag] = h
	}
	c.dflt = r.dflt
	return c
}

// Register sets the write handler for key.
func (r *Registry) Register(key TypeKey, h WriteHandler) {
	switch key.class {
	case classExact:
		r.exact[key.typ] = h
	case classKind:
		r.kinds[key.kind] = h
	case classCapability:
		for i, c := range r.capabilities {
			if c.iface == key.typ {
				r.capabilities[i].handler = h
				return
			}
		}
		r.capabilities = append(r.capabilities, capability{iface: key.typ, handler: h})
	}
}

// Lookup returns the write handler for v. A nil pointer gets the handler
// of the untyped nil, so it is written as null.
func (r *Registry) Lookup(v interface{}) (WriteHandler, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil() {
		t = nil
	}
	if h, ok := r.exact[t]; ok {
		return h, nil
	}
	if t == nil {
		return nil, &NoHandlerError{Type: reflect.TypeOf(v)}
	}
	for _, c := range r.capabilities {
		if t.Implements(c.iface) {
			return c.handler, nil
		}
	}
	if h, ok := r.kinds[t.Kind()]; ok {
		return h, nil
	}
	return nil, &NoHandlerError{Type: t}
}

// RegisterRead sets the read handler for tag.
func (r *Registry) RegisterRead(tag string, h ReadHandler) error {
	if tag == "" {
		return errors.New("transit: empty tag")
	}
	if _, ok := groundTags[tag]; ok {
		return errors.Wrapf(ErrGroundTag, "tag %q", tag)
	}
	switch tag[0] {
	case '#', '~', '^', '`':
		return errors.Errorf("transit: tag %q starts with a reserved character", tag)
	}
	r.read[tag] = h
	return nil
}

// LookupRead returns the read handler registered for tag.
func (r *Registry) LookupRead(tag string) (ReadHandler, bool) {
	h, ok := r.read[tag]
	return h, ok
}

// SetDefault sets the handler for tags without a read handler. With a nil
// default handler such tags are an UnknownTagError.
func (r *Registry) SetDefault(d DefaultHandler) {
	r.dflt = d
}

// Default returns the configured DefaultHandler, or nil.
func (r *Registry) Default() DefaultHandler {
	return r.dflt
}
