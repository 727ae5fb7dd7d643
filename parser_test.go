// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit_test

import (
	"math"
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/transit"
	"github.com/ssbc/transit/transitfakes"
)

func TestReadJSON(t *testing.T) {
	type testcase struct {
		name string
		in   string
		out  interface{}
	}

	home, _ := url.Parse("http://example.com")
	tcs := []testcase{
		{"quoted", `["~#'","hi"]`, "hi"},
		{"plain array", `[1,"a",null,true,1.5]`, []interface{}{int64(1), "a", nil, true, 1.5}},
		{"map as array", `["^ ","a",1,"b",["^ "]]`, map[interface{}]interface{}{"a": int64(1), "b": map[interface{}]interface{}{}}},
		{"object", `{"a":1}`, map[interface{}]interface{}{"a": int64(1)}},
		{"unescape", `["~~a","~^b","~` + "`" + `c","~^ "]`, []interface{}{"~a", "^b", "`c", "^ "}},
		{"lone tilde", `["~"]`, []interface{}{"~"}},
		{"cached key", `[["^ ","name",1],["^ ","^!",2]]`, []interface{}{
			map[interface{}]interface{}{"name": int64(1)},
			map[interface{}]interface{}{"name": int64(2)},
		}},
		{"cached keyword", `["~:abcd","^!"]`, []interface{}{transit.Keyword("abcd"), transit.Keyword("abcd")}},
		{"cached tag", `[["~#set",[]],["^!",[1]]]`, []interface{}{transit.Set{}, transit.Set{int64(1)}}},
		{"plain strings not cached", `["abcd",["^ ","abcd",1]]`, []interface{}{"abcd", map[interface{}]interface{}{"abcd": int64(1)}}},
		{"scalar keys", `["^ ","~i1","a","~?f","b","~_","c","~d0.5","d"]`, map[interface{}]interface{}{int64(1): "a", false: "b", nil: "c", 0.5: "d"}},
		{"big ints", `["~i99999999999999999999","~n5"]`, []interface{}{mustBig("99999999999999999999"), big.NewInt(5)}},
		{"uri", `["~rhttp://example.com"]`, []interface{}{home}},
		{"uuid string", `["~u5a2f8c55-9dcb-4e7f-8d2b-6f1a63f0c0de"]`, []interface{}{uuid.MustParse("5a2f8c55-9dcb-4e7f-8d2b-6f1a63f0c0de")}},
		{"uuid halves", `[["~#u",[0,1]]]`, []interface{}{uuid.UUID{15: 1}}},
		{"time string", `["~t1985-04-12T23:20:50.520Z"]`, []interface{}{time.Date(1985, 4, 12, 23, 20, 50, 520000000, time.UTC)}},
		{"time millis", `[["~#m",1000]]`, []interface{}{time.UnixMilli(1000).UTC()}},
		{"bools", `["~?t","~?f"]`, []interface{}{true, false}},
		{"typed arrays", `[["~#ints",[1,2]],["~#doubles",[0.5]]]`, []interface{}{[]interface{}{int64(1), int64(2)}, []interface{}{0.5}}},
		{"link", `["~#link",["^ ","href","~rhttp://example.com","rel","up"]]`, transit.Link{Href: home, Rel: "up"}},
		{"tagged as single pair", `["^ ","~#set",[1]]`, transit.Set{int64(1)}},
		{"tagged as object", `{"~#list":[1]}`, transit.List{int64(1)}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			v, err := readJSON(t, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.out, v)
		})
	}
}

func mustBig(s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return i
}

func TestReadSpecialFloats(t *testing.T) {
	v, err := readJSON(t, `["~zNaN","~zINF","~z-INF"]`)
	require.NoError(t, err)
	fs := v.([]interface{})
	assert.True(t, math.IsNaN(fs[0].(float64)))
	assert.Equal(t, math.Inf(1), fs[1])
	assert.Equal(t, math.Inf(-1), fs[2])

	_, err = readJSON(t, `["~zNOPE"]`)
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	type testcase struct {
		name  string
		in    string
		check func(error) bool
	}

	tcs := []testcase{
		{"odd map as array", `["^ ","a",1,"b"]`, transit.IsInvalidCompositeMap},
		{"odd cmap", `["~#cmap",[1,2,3]]`, transit.IsInvalidCompositeMap},
		{"tag not first", `[1,"~#set"]`, transit.IsMalformedInput},
		{"tagged too long", `["~#set",[1],2]`, transit.IsMalformedInput},
		{"tagged too short", `["~#set"]`, transit.IsMalformedInput},
		{"tag as key of larger map", `{"~#set":[1],"b":2}`, transit.IsMalformedInput},
		{"unknown cache code", `["^ ","^!",1]`, transit.IsMalformedInput},
		{"invalid cache code", `["^ ","name",1,"^ab",2]`, transit.IsMalformedInput},
		{"unknown scalar tag", `["~#'","~qx"]`, transit.IsUnknownTag},
		{"unknown composite tag", `["~#foo",{}]`, transit.IsUnknownTag},
		{"not json", `[1,`, transit.IsMalformedInput},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readJSON(t, tc.in)
			require.Error(t, err)
			assert.True(t, tc.check(err), "wrong error: %+v", err)
		})
	}

	t.Run("handler failure", func(t *testing.T) {
		_, err := readJSON(t, `["~#'","~uno-uuid"]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"u"`)
	})
}

func TestReadWithBuilders(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	arrays := new(transitfakes.FakeArrayBuilder)
	arrays.InitReturns("empty")
	arrays.InitSizeReturns([]interface{}{})
	arrays.AddCalls(func(acc interface{}, item interface{}) interface{} {
		return append(acc.([]interface{}), item)
	})
	arrays.CompleteCalls(func(acc interface{}) interface{} {
		if s, ok := acc.([]interface{}); ok {
			return len(s)
		}
		return acc
	})

	maps := new(transitfakes.FakeMapBuilder)
	maps.InitSizeReturns(0)
	maps.AddCalls(func(acc interface{}, k, v interface{}) interface{} {
		return acc.(int) + 1
	})
	maps.CompleteCalls(func(acc interface{}) interface{} {
		return acc
	})

	opts := []transit.Option{transit.WithArrayBuilder(arrays), transit.WithMapBuilder(maps)}

	v, err := readJSON(t, `[1,2,3]`, opts...)
	r.NoError(err)
	a.Equal(3, v)
	a.Equal(1, arrays.InitSizeCallCount())
	a.Equal(3, arrays.InitSizeArgsForCall(0))
	a.Equal(3, arrays.AddCallCount())
	a.Equal(1, arrays.CompleteCallCount())
	a.Equal([]interface{}{int64(1), int64(2), int64(3)}, arrays.CompleteArgsForCall(0))
	a.Equal(0, arrays.InitCallCount())

	v, err = readJSON(t, `[]`, opts...)
	r.NoError(err)
	a.Equal("empty", v)
	a.Equal(1, arrays.InitCallCount())

	v, err = readJSON(t, `["^ ","a",1,"b",2]`, opts...)
	r.NoError(err)
	a.Equal(2, v)
	a.Equal(2, maps.InitSizeArgsForCall(0))
	_, k, val := maps.AddArgsForCall(1)
	a.Equal("b", k)
	a.Equal(int64(2), val)

	// composite keys are fine with a builder that does not hash them
	_, err = readJSON(t, `[["^ ","~#set",[]],["^ ",["^!",[]],1]]`, opts...)
	r.NoError(err)

	// tagged representations keep their default shape, nested values do not
	home, _ := url.Parse("http://example.com")
	type testcase struct {
		name string
		in   string
		out  interface{}
	}
	tcs := []testcase{
		{"set", `["~#set",[1,2]]`, transit.Set{int64(1), int64(2)}},
		{"nested in set", `["~#set",[[7,8]]]`, transit.Set{2}},
		{"list", `["~#list",[1]]`, transit.List{int64(1)}},
		{"uuid halves", `["~#u",[1,2]]`, uuid.UUID{7: 1, 15: 2}},
		{"link", `["~#link",["^ ","href","~rhttp://example.com","rel","up"]]`, transit.Link{Href: home, Rel: "up"}},
		{"link object", `{"~#link":{"href":"~rhttp://example.com","rel":"up"}}`, transit.Link{Href: home, Rel: "up"}},
		{"tagged value", `["~#point",[1,2]]`, transit.TaggedValue{Tag: "point", Rep: []interface{}{int64(1), int64(2)}}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			v, err := readJSON(t, tc.in, append(opts, transit.WithDefaultHandler(transit.TaggedValueHandler))...)
			require.NoError(t, err)
			assert.Equal(t, tc.out, v)
		})
	}

	v, err = readJSON(t, `["~#ratio",[1,2]]`, append(opts, transit.WithReadHandler("ratio", transit.RatioReadHandler))...)
	r.NoError(err)
	a.Equal(0, big.NewRat(1, 2).Cmp(v.(*big.Rat)))
}

func TestReadMapWithCompositeKeys(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	v, err := readJSON(t, `["^ ",[1,2],"a",["~#set",[3]],"b","c","d"]`)
	r.NoError(err)
	m, ok := v.(transit.CMap)
	r.True(ok, "got %T", v)
	a.Equal(transit.CMap{
		{Key: []interface{}{int64(1), int64(2)}, Value: "a"},
		{Key: transit.Set{int64(3)}, Value: "b"},
		{Key: "c", Value: "d"},
	}, m)

	v, err = readJSON(t, `[["^ ","~#set",[]],["^ ",["^!",[]],1]]`)
	r.NoError(err)
	a.Equal(transit.CMap{{Key: transit.Set{}, Value: int64(1)}}, v.([]interface{})[1])

	// hashable keys still give a Go map
	v, err = readJSON(t, `["^ ","~i1","a"]`)
	r.NoError(err)
	a.Equal(map[interface{}]interface{}{int64(1): "a"}, v)
}

type pointsHandler struct {
	builder transit.ArrayBuilder
}

func (h pointsHandler) FromRep(rep interface{}) (interface{}, error) {
	return nil, errors.New("points are built, not converted")
}

func (h pointsHandler) ArrayBuilder() transit.ArrayBuilder { return h.builder }

type indexHandler struct {
	builder transit.MapBuilder
}

func (h indexHandler) FromRep(rep interface{}) (interface{}, error) {
	return nil, errors.New("indexes are built, not converted")
}

func (h indexHandler) MapBuilder() transit.MapBuilder { return h.builder }

func TestReadHandlerBuilders(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	pts := new(transitfakes.FakeArrayBuilder)
	pts.InitSizeReturns(int64(0))
	pts.AddCalls(func(acc, item interface{}) interface{} { return acc.(int64) + item.(int64) })
	pts.CompleteCalls(func(acc interface{}) interface{} { return acc })

	idx := new(transitfakes.FakeMapBuilder)
	idx.InitSizeCalls(func(n int) interface{} { return make(map[string]interface{}, n) })
	idx.AddCalls(func(acc, k, v interface{}) interface{} {
		acc.(map[string]interface{})[k.(transit.Keyword).String()] = v
		return acc
	})
	idx.CompleteCalls(func(acc interface{}) interface{} { return acc })

	opts := []transit.Option{
		transit.WithReadHandler("pts", pointsHandler{builder: pts}),
		transit.WithReadHandler("idx", indexHandler{builder: idx}),
	}

	v, err := readJSON(t, `["~#pts",[1,2,3]]`, opts...)
	r.NoError(err)
	a.Equal(int64(6), v)
	a.Equal(3, pts.InitSizeArgsForCall(0))

	v, err = readJSON(t, `["~#idx",["~:a",1,"~:b",2]]`, opts...)
	r.NoError(err)
	a.Equal(map[string]interface{}{"a": int64(1), "b": int64(2)}, v)

	_, err = readJSON(t, `["~#idx",["~:a",1,"~:b"]]`, opts...)
	a.True(transit.IsInvalidCompositeMap(err), "wrong error: %+v", err)

	// a non-array representation goes through FromRep
	_, err = readJSON(t, `["~#pts","x"]`, opts...)
	a.Error(err)
	a.Contains(err.Error(), "built, not converted")
}

func TestReadSetCmapKeys(t *testing.T) {
	// composite maps preserve keys that are not comparable
	v, err := readJSON(t, `["~#cmap",[["^ ","a",1],"x",[1,2],"y"]]`)
	require.NoError(t, err)

	m := v.(transit.CMap)
	got, ok := m.Get(map[interface{}]interface{}{"a": int64(1)})
	assert.True(t, ok)
	assert.Equal(t, "x", got)
	got, ok = m.Get([]interface{}{int64(1), int64(2)})
	assert.True(t, ok)
	assert.Equal(t, "y", got)
	_, ok = m.Get("z")
	assert.False(t, ok)
}
