// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"math"
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/transit"
)

func CodecTestRoundTrip(f Format) func(*testing.T) {
	type testcase struct {
		name  string
		value interface{}
		// result defaults to value
		result interface{}
		// check replaces the equality assertion
		check func(*testing.T, interface{})
	}

	home, err := url.Parse("https://example.com/a?b=c")
	if err != nil {
		panic(err)
	}
	id := uuid.MustParse("5a2f8c55-9dcb-4e7f-8d2b-6f1a63f0c0de")
	ts := time.UnixMilli(1700000000123).UTC()

	nested := interface{}("bottom")
	nestedResult := interface{}("bottom")
	for i := 0; i < 16; i++ {
		nested = []interface{}{nested, i}
		nestedResult = []interface{}{nestedResult, int64(i)}
	}

	tcs := []testcase{
		{name: "nil", value: nil},
		{name: "true", value: true},
		{name: "false", value: false},
		{name: "string", value: "hello"},
		{name: "empty string", value: ""},
		{name: "escaped tilde", value: "~tilde"},
		{name: "escaped caret", value: "^caret"},
		{name: "escaped backtick", value: "`tick"},
		{name: "map marker as string", value: []interface{}{"^ ", "x"}},
		{name: "int", value: 42, result: int64(42)},
		{name: "negative int", value: int64(-7), result: int64(-7)},
		{name: "small uint", value: uint8(5), result: int64(5)},
		{name: "large int", value: int64(1 << 60), result: int64(1 << 60)},
		{name: "min int", value: int64(math.MinInt64), result: int64(math.MinInt64)},
		{
			name:  "max uint64",
			value: uint64(math.MaxUint64),
			check: func(t *testing.T, v interface{}) {
				i, ok := v.(*big.Int)
				require.True(t, ok, "got %T", v)
				assert.Equal(t, "18446744073709551615", i.String())
			},
		},
		{
			name:  "big int",
			value: new(big.Int).Lsh(big.NewInt(1), 100),
			check: func(t *testing.T, v interface{}) {
				i, ok := v.(*big.Int)
				require.True(t, ok, "got %T", v)
				assert.Equal(t, 0, i.Cmp(new(big.Int).Lsh(big.NewInt(1), 100)))
			},
		},
		{name: "float", value: 1.5},
		{name: "float32", value: float32(0.25), result: 0.25},
		{name: "positive infinity", value: math.Inf(1)},
		{name: "negative infinity", value: math.Inf(-1)},
		{
			name:  "NaN",
			value: math.NaN(),
			check: func(t *testing.T, v interface{}) {
				fv, ok := v.(float64)
				require.True(t, ok, "got %T", v)
				assert.True(t, math.IsNaN(fv))
			},
		},
		{name: "bytes", value: []byte("binary\x00data")},
		{name: "keyword", value: transit.Keyword("kw")},
		{name: "symbol", value: transit.Symbol("ns/sym")},
		{name: "char", value: transit.Char('λ')},
		{name: "time", value: ts},
		{name: "uuid", value: id},
		{name: "uri", value: home},
		{
			name:  "decimal",
			value: decimal.RequireFromString("3.14159"),
			check: func(t *testing.T, v interface{}) {
				d, ok := v.(decimal.Decimal)
				require.True(t, ok, "got %T", v)
				assert.True(t, d.Equal(decimal.RequireFromString("3.14159")), "got %s", d)
			},
		},
		{
			name:   "set",
			value:  transit.Set{1, "a"},
			result: transit.Set{int64(1), "a"},
		},
		{
			name:   "list",
			value:  transit.List{transit.Keyword("a"), 2},
			result: transit.List{transit.Keyword("a"), int64(2)},
		},
		{
			name:  "link",
			value: transit.Link{Href: home, Rel: "self", Name: "home", Render: transit.RenderLink},
		},
		{
			name:   "array",
			value:  []interface{}{1, "a", []interface{}{}, nil},
			result: []interface{}{int64(1), "a", []interface{}{}, nil},
		},
		{
			name:   "typed slice",
			value:  []string{"x", "y"},
			result: []interface{}{"x", "y"},
		},
		{
			name:   "string map",
			value:  map[string]interface{}{"a": 1, "b": []interface{}{true}},
			result: map[interface{}]interface{}{"a": int64(1), "b": []interface{}{true}},
		},
		{
			name:   "empty map",
			value:  map[string]int{},
			result: map[interface{}]interface{}{},
		},
		{
			name:   "scalar keys",
			value:  map[interface{}]interface{}{1: "int", nil: "nil", true: "bool", 1.5: "float", transit.Keyword("k"): "kw"},
			result: map[interface{}]interface{}{int64(1): "int", nil: "nil", true: "bool", 1.5: "float", transit.Keyword("k"): "kw"},
		},
		{
			name:   "escaped keys",
			value:  map[string]int{"~a": 1, "^b": 2},
			result: map[interface{}]interface{}{"~a": int64(1), "^b": int64(2)},
		},
		{
			name:   "composite keys",
			value:  map[interface{}]interface{}{[2]int{1, 2}: "pair"},
			result: transit.CMap{{Key: []interface{}{int64(1), int64(2)}, Value: "pair"}},
		},
		{
			name:   "cmap",
			value:  transit.CMap{{Key: []interface{}{1}, Value: 2}, {Key: "s", Value: nil}},
			result: transit.CMap{{Key: []interface{}{int64(1)}, Value: int64(2)}, {Key: "s", Value: nil}},
		},
		{
			name:   "tagged value",
			value:  transit.TaggedValue{Tag: "point", Rep: []interface{}{1, 2}},
			result: transit.TaggedValue{Tag: "point", Rep: []interface{}{int64(1), int64(2)}},
		},
		{
			name:   "tagged scalar",
			value:  transit.TaggedValue{Tag: "x", Rep: "abc"},
			result: transit.TaggedValue{Tag: "x", Rep: "abc"},
		},
		{
			name:  "ratio",
			value: big.NewRat(1, 2),
			check: func(t *testing.T, v interface{}) {
				tv, ok := v.(transit.TaggedValue)
				require.True(t, ok, "got %T", v)
				assert.Equal(t, "ratio", tv.Tag)
				rep, ok := tv.Rep.([]interface{})
				require.True(t, ok, "rep is %T", tv.Rep)
				require.Len(t, rep, 2)
				assert.Equal(t, "1", rep[0].(*big.Int).String())
				assert.Equal(t, "2", rep[1].(*big.Int).String())
			},
		},
		{name: "nested", value: nested, result: nestedResult},
		{
			name: "mixed",
			value: []interface{}{
				map[string]interface{}{"when": ts, "who": transit.Keyword("alice")},
				map[string]interface{}{"when": ts, "who": transit.Keyword("bob")},
			},
			result: []interface{}{
				map[interface{}]interface{}{"when": ts, "who": transit.Keyword("alice")},
				map[interface{}]interface{}{"when": ts, "who": transit.Keyword("bob")},
			},
		},
	}

	mkTest := func(tc testcase) func(*testing.T) {
		return func(t *testing.T) {
			r := require.New(t)

			c, err := f.NewCodec(transit.WithDefaultHandler(transit.TaggedValueHandler))
			r.NoError(err, "error creating codec")

			data, err := c.Marshal(tc.value)
			r.NoError(err, "error marshaling %v", tc.value)

			v, err := c.Unmarshal(data)
			r.NoError(err, "error unmarshaling %q", data)

			if tc.check != nil {
				tc.check(t, v)
				return
			}
			exp := tc.result
			if exp == nil {
				exp = tc.value
			}
			r.Equal(exp, v, "round trip mismatch for %q", data)
		}
	}

	return func(t *testing.T) {
		for _, tc := range tcs {
			t.Run(tc.name, mkTest(tc))
		}
	}
}
