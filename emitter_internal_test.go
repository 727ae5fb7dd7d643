// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	a := assert.New(t)
	a.Equal("", escape(""))
	a.Equal("plain", escape("plain"))
	a.Equal("~~x", escape("~x"))
	a.Equal("~^x", escape("^x"))
	a.Equal("~`x", escape("`x"))
	a.Equal("~^ ", escape("^ "))
	a.Equal("a~", escape("a~"))
}

func TestSortKeys(t *testing.T) {
	m := map[interface{}]int{"b": 0, "a": 0, 2: 0, 10: 0, false: 0}
	keys := reflect.ValueOf(m).MapKeys()
	sortKeys(keys)

	got := make([]interface{}, len(keys))
	for i, k := range keys {
		got[i] = k.Interface()
	}
	// numbers sort by their printed form
	assert.Equal(t, []interface{}{false, 10, 2, "a", "b"}, got)
}

func TestHashable(t *testing.T) {
	a := assert.New(t)
	a.True(hashable("x"))
	a.True(hashable(nil))
	a.True(hashable([2]int{1, 2}))
	a.False(hashable([]interface{}{1}))
	a.False(hashable(map[interface{}]interface{}{}))
	a.False(hashable(Set{}))
	a.True(hashable([1]interface{}{1}))
	a.False(hashable([1]interface{}{[]int{1}}))
	a.False(hashable(struct{ V interface{} }{V: map[int]int{}}))
}
