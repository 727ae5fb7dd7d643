// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ssbc/transit/internal/rollcache"
	"github.com/ssbc/transit/internal/token"
)

const (
	esc       = '~'
	reserved  = '`'
	tagPrefix = "~#"

	// maxJSONInt is the largest integer a JSON number carries without loss
	// in a double.
	maxJSONInt = 1<<53 - 1
)

// emitter writes the tokens of one top-level value.
type emitter struct {
	reg *Registry
	w   token.Writer

	// cache is nil when caching is disabled.
	cache         *rollcache.WriteCache
	preferStrings bool
	quoteScalars  bool
	mapsAsArrays  bool
	verbose       bool
	maxInt        int64
	minInt        int64
}

func newEmitter(reg *Registry, w token.Writer, f Format) *emitter {
	e := &emitter{reg: reg, w: w, maxInt: math.MaxInt64, minInt: math.MinInt64}
	switch f {
	case JSON:
		e.cache = rollcache.NewWriteCache()
		e.preferStrings, e.quoteScalars, e.mapsAsArrays = true, true, true
		e.maxInt, e.minInt = maxJSONInt, -maxJSONInt
	case JSONVerbose:
		e.preferStrings, e.quoteScalars, e.verbose = true, true, true
		e.maxInt, e.minInt = maxJSONInt, -maxJSONInt
	case MessagePack:
		e.cache = rollcache.NewWriteCache()
	}
	return e
}

func (e *emitter) reset() {
	if e.cache != nil {
		e.cache.Reset()
	}
}

func (e *emitter) handler(v interface{}) (WriteHandler, error) {
	h, err := e.reg.Lookup(v)
	if err != nil {
		return nil, err
	}
	if e.verbose {
		if vh, ok := h.(VerboseWriteHandler); ok {
			return vh.VerboseHandler(), nil
		}
	}
	return h, nil
}

func (e *emitter) emitTop(v interface{}) error {
	h, err := e.handler(v)
	if err != nil {
		return err
	}
	if e.quoteScalars && len(h.Tag(v)) == 1 {
		v = quote{v: v}
	}
	return e.emit(v, false)
}

func (e *emitter) emit(v interface{}, asMapKey bool) error {
	h, err := e.handler(v)
	if err != nil {
		return err
	}

	tag := h.Tag(v)
	switch tag {
	case "_":
		if asMapKey {
			return e.emitString("~_", true)
		}
		return e.w.Nil()
	case "?":
		b, ok := h.Rep(v).(bool)
		if !ok || asMapKey {
			return e.emitEncoded(h, tag, v, asMapKey)
		}
		return e.w.Bool(b)
	case "s":
		s, _ := h.StringRep(v)
		return e.emitString(escape(s), asMapKey)
	case "i":
		i, ok := h.Rep(v).(int64)
		if !ok {
			return e.emitEncoded(h, tag, v, asMapKey)
		}
		if asMapKey || i > e.maxInt || i < e.minInt {
			return e.emitString("~i"+strconv.FormatInt(i, 10), asMapKey)
		}
		return e.w.Int(i)
	case "d":
		f, ok := h.Rep(v).(float64)
		if !ok || asMapKey {
			return e.emitEncoded(h, tag, v, asMapKey)
		}
		return e.w.Float(f)
	case "'":
		return e.emitTagged(tag, h.Rep(v))
	case "array":
		if asMapKey {
			return errors.Errorf("transit: %T cannot be used as a map key", v)
		}
		return e.emitArray(h.Rep(v))
	case "map":
		if asMapKey {
			return errors.Errorf("transit: %T cannot be used as a map key", v)
		}
		return e.emitMap(h.Rep(v))
	}
	return e.emitEncoded(h, tag, v, asMapKey)
}

func (e *emitter) emitEncoded(h WriteHandler, tag string, v interface{}, asMapKey bool) error {
	if len(tag) != 1 {
		if asMapKey {
			return errors.Errorf("transit: %T with tag %q cannot be used as a map key", v, tag)
		}
		return e.emitTagged(tag, h.Rep(v))
	}

	rep := h.Rep(v)
	if s, ok := rep.(string); ok {
		return e.emitString(string(esc)+tag+s, asMapKey)
	}
	if asMapKey || e.preferStrings {
		s, ok := h.StringRep(v)
		if !ok {
			return errors.Errorf("transit: %T with tag %q has no string representation", v, tag)
		}
		return e.emitString(string(esc)+tag+s, asMapKey)
	}
	return e.emitTagged(tag, rep)
}

func (e *emitter) emitString(s string, asMapKey bool) error {
	if e.cache != nil {
		s = e.cache.Encode(s, asMapKey)
	}
	return e.w.String(s)
}

func (e *emitter) emitTagged(tag string, rep interface{}) error {
	if e.verbose {
		if err := e.w.MapStart(1); err != nil {
			return err
		}
		if err := e.emitString(tagPrefix+tag, true); err != nil {
			return err
		}
		if err := e.emit(rep, false); err != nil {
			return err
		}
		return e.w.MapEnd()
	}

	if err := e.w.ArrayStart(2); err != nil {
		return err
	}
	if err := e.emitString(tagPrefix+tag, false); err != nil {
		return err
	}
	if err := e.emit(rep, false); err != nil {
		return err
	}
	return e.w.ArrayEnd()
}

func (e *emitter) emitArray(rep interface{}) error {
	if a, ok := rep.([]interface{}); ok {
		if err := e.w.ArrayStart(len(a)); err != nil {
			return err
		}
		for _, item := range a {
			if err := e.emit(item, false); err != nil {
				return err
			}
		}
		return e.w.ArrayEnd()
	}

	rv := reflect.ValueOf(rep)
	if err := e.w.ArrayStart(rv.Len()); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := e.emit(rv.Index(i).Interface(), false); err != nil {
			return err
		}
	}
	return e.w.ArrayEnd()
}

func (e *emitter) emitMap(rep interface{}) error {
	rv := reflect.ValueOf(rep)
	keys := rv.MapKeys()
	sortKeys(keys)

	stringable := true
	for _, k := range keys {
		h, err := e.handler(k.Interface())
		if err != nil {
			return err
		}
		if len(h.Tag(k.Interface())) != 1 {
			stringable = false
			break
		}
	}
	if !stringable {
		return e.emitCMap(rv, keys)
	}

	var err error
	switch {
	case e.mapsAsArrays:
		if err = e.w.ArrayStart(2*len(keys) + 1); err == nil {
			err = e.w.String(rollcache.MapAsArray)
		}
	default:
		err = e.w.MapStart(len(keys))
	}
	if err != nil {
		return err
	}

	for _, k := range keys {
		if err := e.emit(k.Interface(), true); err != nil {
			return err
		}
		if err := e.emit(rv.MapIndex(k).Interface(), false); err != nil {
			return err
		}
	}

	if e.mapsAsArrays {
		return e.w.ArrayEnd()
	}
	return e.w.MapEnd()
}

func (e *emitter) emitCMap(rv reflect.Value, keys []reflect.Value) error {
	flat := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		flat = append(flat, k.Interface(), rv.MapIndex(k).Interface())
	}
	return e.emitTagged("cmap", flat)
}

// escape protects strings that would otherwise read as tagged values or
// cache codes.
func escape(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case esc, rollcache.Sub, reserved:
		return string(esc) + s
	}
	return s
}

// sortKeys orders map keys by type name and printed form, which is stable
// across runs for any key type.
func sortKeys(keys []reflect.Value) {
	type sortable struct {
		typ, repr string
		v         reflect.Value
	}
	ks := make([]sortable, len(keys))
	for i, k := range keys {
		iface := k.Interface()
		ks[i] = sortable{typ: fmt.Sprintf("%T", iface), repr: fmt.Sprint(iface), v: k}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].typ != ks[j].typ {
			return ks[i].typ < ks[j].typ
		}
		return ks[i].repr < ks[j].repr
	})
	for i := range ks {
		keys[i] = ks[i].v
	}
}
