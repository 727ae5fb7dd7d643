// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"math/big"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeFormat is the layout of verbose ("~t") timestamps.
const TimeFormat = "2006-01-02T15:04:05.000Z"

func registerDefaultWriteHandlers(r *Registry) {
	r.Register(TypeOf(nil), nilHandler{})

	r.Register(OfKind(reflect.Bool), boolHandler{})
	r.Register(OfKind(reflect.String), stringHandler{})
	for _, k := range []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64} {
		r.Register(OfKind(k), intHandler{})
	}
	for _, k := range []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr} {
		r.Register(OfKind(k), uintHandler{})
	}
	r.Register(OfKind(reflect.Float32), floatHandler{})
	r.Register(OfKind(reflect.Float64), floatHandler{})
	r.Register(OfKind(reflect.Slice), arrayHandler{})
	r.Register(OfKind(reflect.Array), arrayHandler{})
	r.Register(OfKind(reflect.Map), mapHandler{})

	r.Register(TypeOf([]byte(nil)), bytesHandler{})
	r.Register(TypeOf((*big.Int)(nil)), bigIntHandler{})
	r.Register(TypeOf((*big.Rat)(nil)), ratioHandler{})
	r.Register(TypeOf(decimal.Decimal{}), decimalHandler{})
	r.Register(TypeOf(time.Time{}), timeHandler{})
	r.Register(TypeOf(uuid.UUID{}), uuidHandler{})
	r.Register(TypeOf((*url.URL)(nil)), uriHandler{})
	r.Register(TypeOf(Keyword("")), keywordHandler{})
	r.Register(TypeOf(Symbol("")), symbolHandler{})
	r.Register(TypeOf(Char(0)), charHandler{})
	r.Register(TypeOf(Link{}), linkHandler{})
	r.Register(TypeOf(Set(nil)), setHandler{})
	r.Register(TypeOf(List(nil)), listHandler{})
	r.Register(TypeOf(CMap(nil)), cmapHandler{})
	r.Register(TypeOf(TaggedValue{}), taggedValueHandler{})
	r.Register(TypeOf(quote{}), quoteHandler{})

	r.Register(Implementing((*Marshaler)(nil)), marshalerHandler{})
}

type nilHandler struct{}

func (nilHandler) Tag(interface{}) string               { return "_" }
func (nilHandler) Rep(interface{}) interface{}          { return nil }
func (nilHandler) StringRep(interface{}) (string, bool) { return "", true }

type boolHandler struct{}

func (boolHandler) Tag(interface{}) string          { return "?" }
func (boolHandler) Rep(v interface{}) interface{}   { return reflect.ValueOf(v).Bool() }
func (boolHandler) StringRep(v interface{}) (string, bool) {
	if reflect.ValueOf(v).Bool() {
		return "t", true
	}
	return "f", true
}

type stringHandler struct{}

func (stringHandler) Tag(interface{}) string        { return "s" }
func (stringHandler) Rep(v interface{}) interface{} { return reflect.ValueOf(v).String() }
func (stringHandler) StringRep(v interface{}) (string, bool) {
	return reflect.ValueOf(v).String(), true
}

type intHandler struct{}

func (intHandler) Tag(interface{}) string        { return "i" }
func (intHandler) Rep(v interface{}) interface{} { return reflect.ValueOf(v).Int() }
func (intHandler) StringRep(v interface{}) (string, bool) {
	return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), true
}

// uintHandler switches to the big integer tag for values beyond int64.
type uintHandler struct{}

func (uintHandler) Tag(v interface{}) string {
	if reflect.ValueOf(v).Uint() > math.MaxInt64 {
		return "n"
	}
	return "i"
}

func (uintHandler) Rep(v interface{}) interface{} {
	u := reflect.ValueOf(v).Uint()
	if u > math.MaxInt64 {
		return strconv.FormatUint(u, 10)
	}
	return int64(u)
}

func (uintHandler) StringRep(v interface{}) (string, bool) {
	return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), true
}

// floatHandler writes NaN and the infinities with the special number tag.
type floatHandler struct{}

func (floatHandler) Tag(v interface{}) string {
	f := reflect.ValueOf(v).Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "z"
	}
	return "d"
}

func (floatHandler) Rep(v interface{}) interface{} {
	f := reflect.ValueOf(v).Float()
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return f
}

func (h floatHandler) StringRep(v interface{}) (string, bool) {
	switch rep := h.Rep(v).(type) {
	case string:
		return rep, true
	case float64:
		return strconv.FormatFloat(rep, 'g', -1, 64), true
	}
	return "", false
}

type bytesHandler struct{}

func (bytesHandler) Tag(interface{}) string { return "b" }
func (bytesHandler) Rep(v interface{}) interface{} {
	return base64.StdEncoding.EncodeToString(v.([]byte))
}
func (h bytesHandler) StringRep(v interface{}) (string, bool) { return h.Rep(v).(string), true }

type bigIntHandler struct{}

func (bigIntHandler) Tag(interface{}) string                 { return "n" }
func (bigIntHandler) Rep(v interface{}) interface{}          { return v.(*big.Int).String() }
func (bigIntHandler) StringRep(v interface{}) (string, bool) { return v.(*big.Int).String(), true }

// ratioHandler writes a rational number as its numerator and denominator.
type ratioHandler struct{}

func (ratioHandler) Tag(interface{}) string { return "ratio" }
func (ratioHandler) Rep(v interface{}) interface{} {
	r := v.(*big.Rat)
	return []interface{}{new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom())}
}
func (ratioHandler) StringRep(interface{}) (string, bool) { return "", false }

type decimalHandler struct{}

func (decimalHandler) Tag(interface{}) string                 { return "f" }
func (decimalHandler) Rep(v interface{}) interface{}          { return v.(decimal.Decimal).String() }
func (decimalHandler) StringRep(v interface{}) (string, bool) { return v.(decimal.Decimal).String(), true }

// timeHandler writes milliseconds since the epoch. Precision below a
// millisecond is truncated.
type timeHandler struct{}

func (timeHandler) Tag(interface{}) string        { return "m" }
func (timeHandler) Rep(v interface{}) interface{} { return v.(time.Time).UnixMilli() }
func (timeHandler) StringRep(v interface{}) (string, bool) {
	return strconv.FormatInt(v.(time.Time).UnixMilli(), 10), true
}
func (timeHandler) VerboseHandler() WriteHandler { return verboseTimeHandler{} }

type verboseTimeHandler struct{}

func (verboseTimeHandler) Tag(interface{}) string { return "t" }
func (verboseTimeHandler) Rep(v interface{}) interface{} {
	return v.(time.Time).UTC().Format(TimeFormat)
}
func (h verboseTimeHandler) StringRep(v interface{}) (string, bool) { return h.Rep(v).(string), true }

// uuidHandler represents a UUID as its two 64 bit halves, or as the
// canonical string where a string is needed.
type uuidHandler struct{}

func (uuidHandler) Tag(interface{}) string { return "u" }
func (uuidHandler) Rep(v interface{}) interface{} {
	u := v.(uuid.UUID)
	return []interface{}{
		int64(binary.BigEndian.Uint64(u[:8])),
		int64(binary.BigEndian.Uint64(u[8:])),
	}
}
func (uuidHandler) StringRep(v interface{}) (string, bool) { return v.(uuid.UUID).String(), true }

type uriHandler struct{}

func (uriHandler) Tag(interface{}) string                 { return "r" }
func (uriHandler) Rep(v interface{}) interface{}          { return v.(*url.URL).String() }
func (uriHandler) StringRep(v interface{}) (string, bool) { return v.(*url.URL).String(), true }

type keywordHandler struct{}

func (keywordHandler) Tag(interface{}) string                 { return ":" }
func (keywordHandler) Rep(v interface{}) interface{}          { return string(v.(Keyword)) }
func (keywordHandler) StringRep(v interface{}) (string, bool) { return string(v.(Keyword)), true }

type symbolHandler struct{}

func (symbolHandler) Tag(interface{}) string                 { return "$" }
func (symbolHandler) Rep(v interface{}) interface{}          { return string(v.(Symbol)) }
func (symbolHandler) StringRep(v interface{}) (string, bool) { return string(v.(Symbol)), true }

type charHandler struct{}

func (charHandler) Tag(interface{}) string                 { return "c" }
func (charHandler) Rep(v interface{}) interface{}          { return string(rune(v.(Char))) }
func (charHandler) StringRep(v interface{}) (string, bool) { return string(rune(v.(Char))), true }

type linkHandler struct{}

func (linkHandler) Tag(interface{}) string { return "link" }
func (linkHandler) Rep(v interface{}) interface{} {
	l := v.(Link)
	m := map[string]interface{}{
		"href": nil,
		"rel":  l.Rel,
	}
	if l.Href != nil {
		m["href"] = l.Href
	}
	if l.Name != "" {
		m["name"] = l.Name
	}
	if l.Render != "" {
		m["render"] = l.Render
	}
	if l.Prompt != "" {
		m["prompt"] = l.Prompt
	}
	return m
}
func (linkHandler) StringRep(interface{}) (string, bool) { return "", false }

type setHandler struct{}

func (setHandler) Tag(interface{}) string               { return "set" }
func (setHandler) Rep(v interface{}) interface{}        { return []interface{}(v.(Set)) }
func (setHandler) StringRep(interface{}) (string, bool) { return "", false }

type listHandler struct{}

func (listHandler) Tag(interface{}) string               { return "list" }
func (listHandler) Rep(v interface{}) interface{}        { return []interface{}(v.(List)) }
func (listHandler) StringRep(interface{}) (string, bool) { return "", false }

// cmapHandler flattens a CMap into alternating keys and values.
type cmapHandler struct{}

func (cmapHandler) Tag(interface{}) string { return "cmap" }
func (cmapHandler) Rep(v interface{}) interface{} {
	m := v.(CMap)
	flat := make([]interface{}, 0, 2*len(m))
	for _, e := range m {
		flat = append(flat, e.Key, e.Value)
	}
	return flat
}
func (cmapHandler) StringRep(interface{}) (string, bool) { return "", false }

type taggedValueHandler struct{}

func (taggedValueHandler) Tag(v interface{}) string      { return v.(TaggedValue).Tag }
func (taggedValueHandler) Rep(v interface{}) interface{} { return v.(TaggedValue).Rep }
func (taggedValueHandler) StringRep(v interface{}) (string, bool) {
	s, ok := v.(TaggedValue).Rep.(string)
	return s, ok
}

type quoteHandler struct{}

func (quoteHandler) Tag(interface{}) string               { return "'" }
func (quoteHandler) Rep(v interface{}) interface{}        { return v.(quote).v }
func (quoteHandler) StringRep(interface{}) (string, bool) { return "", false }

// arrayHandler and mapHandler pass the value through; the emitter walks it.
type arrayHandler struct{}

func (arrayHandler) Tag(interface{}) string               { return "array" }
func (arrayHandler) Rep(v interface{}) interface{}        { return v }
func (arrayHandler) StringRep(interface{}) (string, bool) { return "", false }

type mapHandler struct{}

func (mapHandler) Tag(interface{}) string               { return "map" }
func (mapHandler) Rep(v interface{}) interface{}        { return v }
func (mapHandler) StringRep(interface{}) (string, bool) { return "", false }
