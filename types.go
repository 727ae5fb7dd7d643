// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Keyword is a symbolic identifier that evaluates to itself. It travels
// as "~:name".
type Keyword string

func (k Keyword) String() string { return string(k) }

// Symbol is a symbolic identifier with an optional namespace, written
// "ns/name". It travels as "~$ns/name".
type Symbol string

// Namespace returns the part before the last slash, or "" if there is none.
func (s Symbol) Namespace() string {
	if i := strings.LastIndexByte(string(s), '/'); i > 0 {
		return string(s[:i])
	}
	return ""
}

// Name returns the part after the last slash.
func (s Symbol) Name() string {
	if s == "/" {
		return "/"
	}
	if i := strings.LastIndexByte(string(s), '/'); i >= 0 {
		return string(s[i+1:])
	}
	return string(s)
}

func (s Symbol) String() string { return string(s) }

// Char is a single character, tagged "c".
type Char rune

func (c Char) String() string { return string(c) }

// TaggedValue is an explicit tag and representation pair. Readers configured
// with TaggedValueHandler return it for tags they have no handler for, and
// writers emit it as-is, which makes it an escape hatch for types without
// a registered handler.
type TaggedValue struct {
	Tag string
	Rep interface{}
}

func (tv TaggedValue) String() string {
	return fmt.Sprintf("#%s %v", tv.Tag, tv.Rep)
}

// Set is an unordered collection of distinct values. The elements are kept
// in wire order since they need not be comparable.
type Set []interface{}

// List is a sequence that should be distinguished from a plain array.
type List []interface{}

// MapEntry is one key/value pair of a CMap.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// CMap is a map whose keys need not be strings or even comparable. It is
// the decoded form of a composite map and keeps entries in wire order.
type CMap []MapEntry

// Get returns the value stored under a key deeply equal to key.
func (m CMap) Get(key interface{}) (interface{}, bool) {
	for _, e := range m {
		if reflect.DeepEqual(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Link is a hypermedia link.
type Link struct {
	Href   *url.URL
	Rel    string
	Name   string
	Render string
	Prompt string
}

// Render values accepted by a Link.
const (
	RenderLink  = "link"
	RenderImage = "image"
)

// quote wraps a scalar written at the top level of a JSON stream, where
// some parsers only accept arrays and objects.
type quote struct {
	v interface{}
}

// tagMarker is the decoded form of a "~#tag" string. It only ever appears
// as the first element of a tagged value and never escapes the parser.
type tagMarker string
