// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package rollcache implements the rolling dictionary that replaces
// repeated map keys and tag strings with short codes.
//
// A code is the prefix "^" followed by one or two digits in base 94,
// each digit written as a printable ASCII character starting at '!'.
// Codes are handed out in order of first occurrence, so a writer and a
// reader walking the same token sequence agree on them without ever
// exchanging the dictionary. Once 94*94 entries are in use the cache
// starts over from code 0.
package rollcache

import (
	"github.com/pkg/errors"
)

const (
	// MinSizeCacheable is the length below which strings are never cached.
	MinSizeCacheable = 4

	// Size is the number of codes available before the cache rolls over.
	Size = digits * digits

	// Sub is the first character of every cache code.
	Sub = '^'

	// MapAsArray marks an array that holds alternating map keys and values.
	// It starts with Sub but is never a cache code.
	MapAsArray = "^ "

	digits   = 94
	firstOrd = 33
)

// ErrBadCode is returned for a cache code that is malformed or points past
// the entries seen so far.
var ErrBadCode = errors.New("rollcache: invalid cache code")

// IsCacheCode reports whether s is a reference to a previously cached value.
func IsCacheCode(s string) bool {
	return len(s) > 1 && s[0] == Sub && s != MapAsArray
}

// Cacheable reports whether s may be entered into the cache. Map keys of
// sufficient length always qualify; elsewhere only tags ("~#"), symbols
// ("~$") and keywords ("~:") do.
func Cacheable(s string, asMapKey bool) bool {
	if len(s) < MinSizeCacheable {
		return false
	}
	if asMapKey {
		return true
	}
	if s[0] != '~' {
		return false
	}
	switch s[1] {
	case '#', '$', ':':
		return true
	}
	return false
}

func indexToCode(i int) string {
	hi, lo := i/digits, i%digits
	if hi == 0 {
		return string([]byte{Sub, byte(lo + firstOrd)})
	}
	return string([]byte{Sub, byte(hi + firstOrd), byte(lo + firstOrd)})
}

func codeToIndex(code string) (int, error) {
	switch len(code) {
	case 2:
		lo := int(code[1]) - firstOrd
		if lo < 0 || lo >= digits {
			return 0, errors.Wrapf(ErrBadCode, "code %q", code)
		}
		return lo, nil
	case 3:
		hi, lo := int(code[1])-firstOrd, int(code[2])-firstOrd
		if hi < 0 || hi >= digits || lo < 0 || lo >= digits {
			return 0, errors.Wrapf(ErrBadCode, "code %q", code)
		}
		return hi*digits + lo, nil
	}
	return 0, errors.Wrapf(ErrBadCode, "code %q", code)
}

// WriteCache assigns codes to strings on the encoding side.
type WriteCache struct {
	codes map[string]string
}

// NewWriteCache returns an empty WriteCache.
func NewWriteCache() *WriteCache {
	return &WriteCache{codes: make(map[string]string)}
}

// Encode returns the code for s if s was already seen since the last
// Reset. Otherwise s is returned unchanged and, when cacheable, assigned
// the next code.
func (c *WriteCache) Encode(s string, asMapKey bool) string {
	if !Cacheable(s, asMapKey) {
		return s
	}
	if code, ok := c.codes[s]; ok {
		return code
	}
	if len(c.codes) == Size {
		c.Reset()
	}
	c.codes[s] = indexToCode(len(c.codes))
	return s
}

// Len returns the number of assigned codes.
func (c *WriteCache) Len() int { return len(c.codes) }

// Reset forgets all assigned codes.
func (c *WriteCache) Reset() {
	c.codes = make(map[string]string)
}

// ReadCache resolves codes back to decoded values.
type ReadCache struct {
	values []interface{}
}

// NewReadCache returns an empty ReadCache.
func NewReadCache() *ReadCache {
	return &ReadCache{values: make([]interface{}, 0, 16)}
}

// Decode resolves s. Cache codes return the value stored under them.
// Any other string is handed to parse, and the result is remembered when s
// is cacheable.
func (c *ReadCache) Decode(s string, asMapKey bool, parse func(string) (interface{}, error)) (interface{}, error) {
	if IsCacheCode(s) {
		idx, err := codeToIndex(s)
		if err != nil {
			return nil, err
		}
		if idx >= len(c.values) {
			return nil, errors.Wrapf(ErrBadCode, "code %q refers to entry %d of %d", s, idx, len(c.values))
		}
		return c.values[idx], nil
	}

	v, err := parse(s)
	if err != nil {
		return nil, err
	}
	if Cacheable(s, asMapKey) {
		if len(c.values) == Size {
			c.values = c.values[:0]
		}
		c.values = append(c.values, v)
	}
	return v, nil
}

// Len returns the number of remembered values.
func (c *ReadCache) Len() int { return len(c.values) }

// Reset forgets all remembered values.
func (c *ReadCache) Reset() {
	for i := range c.values {
		c.values[i] = nil
	}
	c.values = c.values[:0]
}
