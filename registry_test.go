// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit_test

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/transit"
)

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1fC", float64(c)) }

type (
	named    interface{ Name() string }
	labelled interface{ Label() string }
)

type badge struct{}

func (badge) Name() string  { return "badge" }
func (badge) Label() string { return "label" }

func fixedTag(tag string) transit.WriteHandler {
	return transit.NewWriteHandler(tag, func(v interface{}) interface{} { return tag }, nil)
}

func TestRegistryLookupOrder(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	reg := transit.NewRegistry()

	// kinds cover named types without a handler of their own
	h, err := reg.Lookup(celsius(21.5))
	r.NoError(err)
	a.Equal("d", h.Tag(celsius(21.5)))

	// capabilities come before kinds
	reg.Register(transit.Implementing((*fmt.Stringer)(nil)), fixedTag("stringer"))
	h, err = reg.Lookup(celsius(21.5))
	r.NoError(err)
	a.Equal("stringer", h.Tag(nil))

	// exact types come before capabilities
	reg.Register(transit.TypeOf(celsius(0)), fixedTag("temp"))
	h, err = reg.Lookup(celsius(21.5))
	r.NoError(err)
	a.Equal("temp", h.Tag(nil))

	// capabilities are searched in registration order
	reg.Register(transit.Implementing((*named)(nil)), fixedTag("named"))
	reg.Register(transit.Implementing((*labelled)(nil)), fixedTag("labelled"))
	h, err = reg.Lookup(badge{})
	r.NoError(err)
	a.Equal("named", h.Tag(nil))

	// replacing a capability keeps its position
	reg.Register(transit.Implementing((*named)(nil)), fixedTag("renamed"))
	h, err = reg.Lookup(badge{})
	r.NoError(err)
	a.Equal("renamed", h.Tag(nil))
}

func TestRegistryNoHandler(t *testing.T) {
	reg := transit.NewRegistry()

	_, err := reg.Lookup(&widget{})
	var nhErr *transit.NoHandlerError
	require.ErrorAs(t, err, &nhErr)
	assert.Equal(t, reflect.TypeOf(&widget{}), nhErr.Type)

	_, err = reg.Lookup(make(chan int))
	assert.True(t, transit.IsNoHandler(err))
}

func TestRegistryReadHandlers(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	reg := transit.NewRegistry()
	for _, tag := range []string{"_", "s", "?", "i", "d", "b", "'", "array", "map"} {
		err := reg.RegisterRead(tag, transit.ReadHandlerFunc(nil))
		a.ErrorIs(err, transit.ErrGroundTag, "tag %q", tag)
	}
	for _, tag := range []string{"", "#x", "~x", "^x", "`x"} {
		a.Error(reg.RegisterRead(tag, transit.ReadHandlerFunc(nil)), "tag %q", tag)
	}

	_, ok := reg.LookupRead("point")
	a.False(ok)

	h := transit.ReadHandlerFunc(func(rep interface{}) (interface{}, error) { return "p", nil })
	r.NoError(reg.RegisterRead("point", h))
	got, ok := reg.LookupRead("point")
	r.True(ok)
	v, err := got.FromRep(nil)
	r.NoError(err)
	a.Equal("p", v)

	// last registration wins, also for default tags
	r.NoError(reg.RegisterRead(":", h))
	got, _ = reg.LookupRead(":")
	v, _ = got.FromRep("kw")
	a.Equal("p", v)

	a.Nil(reg.Default())
	reg.SetDefault(transit.TaggedValueHandler)
	a.NotNil(reg.Default())
}

func TestRegistryClone(t *testing.T) {
	a := assert.New(t)

	reg := transit.NewRegistry()
	clone := reg.Clone()

	reg.Register(transit.TypeOf(widget{}), fixedTag("widget"))
	reg.SetDefault(transit.TaggedValueHandler)
	a.NoError(reg.RegisterRead("widget", transit.ReadHandlerFunc(nil)))

	_, err := clone.Lookup(widget{})
	a.True(transit.IsNoHandler(err))
	a.Nil(clone.Default())
	_, ok := clone.LookupRead("widget")
	a.False(ok)

	_, err = reg.Lookup(widget{})
	a.NoError(err)
}

func TestRegistryPrivateToWriter(t *testing.T) {
	reg := transit.NewRegistry()
	reg.Register(transit.TypeOf(widget{}), fixedTag("widget"))

	out := writeJSON(t, widget{}, transit.WithRegistry(reg))
	assert.Equal(t, `["~#widget","widget"]`+"\n", out)

	// changes after creation do not reach existing writers
	var buf bytes.Buffer
	w, err := transit.NewWriter(&buf, transit.JSON, transit.WithRegistry(reg))
	require.NoError(t, err)
	reg.Register(transit.TypeOf(widget{}), fixedTag("changed"))
	require.NoError(t, w.Write(widget{}))
	assert.Equal(t, `["~#widget","widget"]`+"\n", buf.String())
}

func TestImplementingPanicsOnNonInterface(t *testing.T) {
	assert.Panics(t, func() { transit.Implementing(widget{}) })
	assert.Panics(t, func() { transit.Implementing(nil) })
	assert.NotPanics(t, func() { transit.Implementing((*fmt.Stringer)(nil)) })
}

type point struct{ X, Y int }

func (p point) TransitTag() string      { return "point" }
func (p point) TransitRep() interface{} { return []interface{}{p.X, p.Y} }

func TestMarshalerCapability(t *testing.T) {
	out := writeJSON(t, point{1, 2})
	assert.Equal(t, `["~#point",[1,2]]`+"\n", out)
}
