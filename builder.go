// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

//go:generate counterfeiter -o transitfakes/fake_array_builder.go . ArrayBuilder
//go:generate counterfeiter -o transitfakes/fake_map_builder.go . MapBuilder

// ArrayBuilder assembles decoded arrays. The parser threads the value
// returned by Init through Add and hands it to Complete exactly once;
// Add is never called after Complete.
type ArrayBuilder interface {
	Init() interface{}
	InitSize(n int) interface{}
	Add(a interface{}, item interface{}) interface{}
	Complete(a interface{}) interface{}
}

// MapBuilder assembles decoded maps. The same call discipline as for
// ArrayBuilder applies.
type MapBuilder interface {
	Init() interface{}
	InitSize(n int) interface{}
	Add(m interface{}, key, value interface{}) interface{}
	Complete(m interface{}) interface{}
}

// SliceBuilder builds []interface{}. It is the default ArrayBuilder.
type SliceBuilder struct{}

func (SliceBuilder) Init() interface{}        { return []interface{}{} }
func (SliceBuilder) InitSize(n int) interface{} { return make([]interface{}, 0, n) }
func (SliceBuilder) Add(a interface{}, item interface{}) interface{} {
	return append(a.([]interface{}), item)
}
func (SliceBuilder) Complete(a interface{}) interface{} { return a }

// GoMapBuilder builds map[interface{}]interface{}. It is the default
// MapBuilder; keys must be comparable.
type GoMapBuilder struct{}

func (GoMapBuilder) Init() interface{} { return map[interface{}]interface{}{} }
func (GoMapBuilder) InitSize(n int) interface{} {
	return make(map[interface{}]interface{}, n)
}
func (GoMapBuilder) Add(m interface{}, key, value interface{}) interface{} {
	m.(map[interface{}]interface{})[key] = value
	return m
}
func (GoMapBuilder) Complete(m interface{}) interface{} { return m }

// CMapBuilder builds CMap values and is used for composite maps, whose keys
// may be arrays or maps.
type CMapBuilder struct{}

func (CMapBuilder) Init() interface{}          { return CMap{} }
func (CMapBuilder) InitSize(n int) interface{} { return make(CMap, 0, n) }
func (CMapBuilder) Add(m interface{}, key, value interface{}) interface{} {
	return append(m.(CMap), MapEntry{Key: key, Value: value})
}
func (CMapBuilder) Complete(m interface{}) interface{} { return m }
