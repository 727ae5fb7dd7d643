// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/transit/internal/rollcache"
	"github.com/ssbc/transit/internal/token"
)

// parser decodes the tokens of one top-level value.
type parser struct {
	reg    *Registry
	arrays ArrayBuilder
	maps   MapBuilder
	logger log.Logger

	// cache is nil for formats that never emit cache codes.
	cache *rollcache.ReadCache
	toks  token.Reader
}

func (p *parser) next() (token.Token, error) {
	t, err := p.toks.Next()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return token.Token{}, malformed("reading token", err)
	}
	return t, nil
}

// value parses the next value and rejects stray tag markers.
func (p *parser) value(asMapKey bool) (interface{}, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	return p.valueFrom(t, asMapKey)
}

func (p *parser) valueFrom(t token.Token, asMapKey bool) (interface{}, error) {
	v, err := p.parseToken(t, asMapKey)
	if err != nil {
		return nil, err
	}
	if tag, ok := v.(tagMarker); ok {
		return nil, malformed("tag "+string(tag)+" outside of a tagged value", nil)
	}
	return v, nil
}

func (p *parser) parseToken(t token.Token, asMapKey bool) (interface{}, error) {
	switch t.Kind {
	case token.Nil:
		return nil, nil
	case token.Bool:
		return t.Bool, nil
	case token.Int:
		return t.Int, nil
	case token.Uint:
		if t.Uint > math.MaxInt64 {
			return new(big.Int).SetUint64(t.Uint), nil
		}
		return int64(t.Uint), nil
	case token.Float:
		return t.Float, nil
	case token.Bytes:
		return t.Bytes, nil
	case token.String:
		return p.parseString(t.Str, asMapKey)
	case token.Array:
		return p.parseArray(t.Len)
	case token.Map:
		return p.parseMap(t.Len)
	}
	return nil, malformed("unexpected token "+t.Kind.String(), nil)
}

func (p *parser) parseString(s string, asMapKey bool) (interface{}, error) {
	if p.cache == nil {
		return p.decodeString(s)
	}
	v, err := p.cache.Decode(s, asMapKey, p.decodeString)
	if errors.Is(err, rollcache.ErrBadCode) {
		return nil, malformed("cache lookup", err)
	}
	return v, err
}

func (p *parser) decodeString(s string) (interface{}, error) {
	if len(s) < 2 || s[0] != esc {
		return s, nil
	}
	switch s[1] {
	case esc, rollcache.Sub, reserved:
		return s[1:], nil
	case '#':
		return tagMarker(s[2:]), nil
	}
	return p.fromRep(s[1:2], s[2:])
}

func (p *parser) fromRep(tag string, rep interface{}) (interface{}, error) {
	if h, ok := p.reg.LookupRead(tag); ok {
		v, err := h.FromRep(rep)
		if err != nil {
			return nil, errors.Wrapf(err, "transit: decoding %q value", tag)
		}
		return v, nil
	}

	dflt := p.reg.Default()
	if dflt == nil {
		return nil, &UnknownTagError{Tag: tag}
	}
	level.Debug(p.logger).Log("event", "default handler", "tag", tag)
	v, err := dflt.FromRep(tag, rep)
	if err != nil {
		return nil, errors.Wrapf(err, "transit: default handler for %q", tag)
	}
	return v, nil
}

func (p *parser) parseArray(n int) (interface{}, error) {
	return p.parseArrayWith(n, p.arrays, p.maps)
}

// parseArrayWith assembles an array with arrays, or a map-as-array with
// maps. Nested values use the configured builders.
func (p *parser) parseArrayWith(n int, arrays ArrayBuilder, maps MapBuilder) (interface{}, error) {
	if n == 0 {
		return arrays.Complete(arrays.Init()), nil
	}

	first, err := p.next()
	if err != nil {
		return nil, err
	}
	if first.Kind == token.String && first.Str == rollcache.MapAsArray {
		return p.parseMapAsArray(n-1, maps)
	}

	v, err := p.parseToken(first, false)
	if err != nil {
		return nil, err
	}
	if tag, ok := v.(tagMarker); ok {
		if n != 2 {
			return nil, malformed("tagged value "+string(tag)+" needs exactly two elements", nil)
		}
		return p.parseTagged(string(tag))
	}

	a := arrays.Add(arrays.InitSize(n), v)
	for i := 1; i < n; i++ {
		item, err := p.value(false)
		if err != nil {
			return nil, err
		}
		a = arrays.Add(a, item)
	}
	return arrays.Complete(a), nil
}

// parseMapAsArray reads n alternating keys and values. A single pair keyed
// by a tag is a tagged value.
func (p *parser) parseMapAsArray(n int, maps MapBuilder) (interface{}, error) {
	if n%2 != 0 {
		return nil, &InvalidCompositeMapError{Len: n}
	}
	return p.parsePairs(n/2, maps)
}

func (p *parser) parseMap(n int) (interface{}, error) {
	return p.parsePairs(n, p.maps)
}

func (p *parser) parsePairs(n int, maps MapBuilder) (interface{}, error) {
	if n == 0 {
		return maps.Complete(maps.Init()), nil
	}

	// GoMapBuilder entries are collected first: a key Go cannot hash
	// turns the whole map into a CMap.
	_, goMap := maps.(GoMapBuilder)
	var (
		m       interface{}
		entries CMap
	)
	if goMap {
		entries = make(CMap, 0, n)
	} else {
		m = maps.InitSize(n)
	}

	for i := 0; i < n; i++ {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		k, err := p.parseToken(t, true)
		if err != nil {
			return nil, err
		}
		if tag, ok := k.(tagMarker); ok {
			if n != 1 {
				return nil, malformed("tag "+string(tag)+" as key of a map with other entries", nil)
			}
			return p.parseTagged(string(tag))
		}

		v, err := p.value(false)
		if err != nil {
			return nil, err
		}
		if goMap {
			entries = append(entries, MapEntry{Key: k, Value: v})
			continue
		}
		m = maps.Add(m, k, v)
	}

	if !goMap {
		return maps.Complete(m), nil
	}
	for _, e := range entries {
		if !hashable(e.Key) {
			level.Debug(p.logger).Log("event", "composite keys", "type", fmt.Sprintf("%T", e.Key))
			return entries, nil
		}
	}
	gm := maps.InitSize(len(entries))
	for _, e := range entries {
		gm = maps.Add(gm, e.Key, e.Value)
	}
	return maps.Complete(gm), nil
}

// parseTagged decodes the representation that follows a tag and hands it to
// the tag's handler. Handlers see their representation in the default
// shapes ([]interface{}, map[interface{}]interface{}) whatever builders the
// reader was configured with; only nested values use those builders.
func (p *parser) parseTagged(tag string) (interface{}, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	h, _ := p.reg.LookupRead(tag)
	var rep interface{}
	switch t.Kind {
	case token.Array:
		switch h := h.(type) {
		case MapReadHandler:
			return p.buildMap(tag, h.MapBuilder(), t.Len)
		case ArrayReadHandler:
			return p.buildArray(h.ArrayBuilder(), t.Len)
		}
		rep, err = p.parseArrayWith(t.Len, SliceBuilder{}, GoMapBuilder{})
	case token.Map:
		if h, ok := h.(MapReadHandler); ok {
			return p.parsePairs(t.Len, h.MapBuilder())
		}
		rep, err = p.parsePairs(t.Len, GoMapBuilder{})
	default:
		rep, err = p.valueFrom(t, false)
	}
	if err != nil {
		return nil, err
	}
	return p.fromRep(tag, rep)
}

func (p *parser) buildMap(tag string, b MapBuilder, n int) (interface{}, error) {
	if n%2 != 0 {
		return nil, errors.Wrapf(&InvalidCompositeMapError{Len: n}, "transit: decoding %q value", tag)
	}
	m := b.InitSize(n / 2)
	for i := 0; i < n; i += 2 {
		k, err := p.value(false)
		if err != nil {
			return nil, err
		}
		v, err := p.value(false)
		if err != nil {
			return nil, err
		}
		m = b.Add(m, k, v)
	}
	return b.Complete(m), nil
}

func (p *parser) buildArray(b ArrayBuilder, n int) (interface{}, error) {
	a := b.InitSize(n)
	for i := 0; i < n; i++ {
		item, err := p.value(false)
		if err != nil {
			return nil, err
		}
		a = b.Add(a, item)
	}
	return b.Complete(a), nil
}

// hashable reports whether k can be used as a Go map key. Comparable types
// can still hold a slice or map behind an interface field or element, so
// those are checked with a throwaway insert, which panics in that case.
func hashable(k interface{}) (ok bool) {
	if k == nil {
		return true
	}
	t := reflect.TypeOf(k)
	if !t.Comparable() {
		return false
	}
	if !holdsInterface(t) {
		return true
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = map[interface{}]struct{}{k: {}}
	return true
}

func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
