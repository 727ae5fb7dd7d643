// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package token defines the container-neutral token stream that sits
// between a wire format (JSON, MessagePack) and the transit parser and
// emitter.
package token

import "fmt"

// Kind identifies the type of a Token.
type Kind uint8

const (
	Nil Kind = iota
	Bool
	Int
	Uint
	Float
	String
	Bytes
	// Array opens an array of Token.Len elements.
	Array
	// Map opens a map of Token.Len key/value pairs.
	Map
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "nil"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Array:
		return "array"
	case Map:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is a single scalar or container header. Containers carry their
// element count; there are no closing tokens.
type Token struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Str   string
	Bytes []byte
	Len   int
}

// Reader yields the tokens of one top-level value.
type Reader interface {
	Next() (Token, error)
}

// Source splits a stream into top-level values. Value reads a complete
// value from the underlying stream before returning, and returns io.EOF
// once the stream is exhausted on a value boundary.
type Source interface {
	Value() (Reader, error)
}

// Writer receives the tokens of one top-level value. Nothing reaches the
// underlying stream until Flush; Reset drops a partially written value.
type Writer interface {
	Nil() error
	Bool(bool) error
	Int(int64) error
	Float(float64) error
	String(string) error

	ArrayStart(n int) error
	ArrayEnd() error
	MapStart(n int) error
	MapEnd() error

	Flush() error
	Reset()
}
