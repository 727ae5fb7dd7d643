// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/transit"
)

type unregistered struct {
	Field int
}

func CodecTestErrors(f Format) func(*testing.T) {
	return func(t *testing.T) {
		t.Run("UnknownTag", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			data, err := c.Marshal(transit.TaggedValue{Tag: "x", Rep: "abc"})
			r.NoError(err)

			_, err = c.Unmarshal(data)
			r.Error(err)
			a.True(transit.IsUnknownTag(err), "wrong error: %+v", err)

			var tagErr *transit.UnknownTagError
			r.True(errors.As(err, &tagErr))
			a.Equal("x", tagErr.Tag)
		})

		t.Run("DefaultHandler", func(t *testing.T) {
			r := require.New(t)

			var gotTag string
			var gotRep interface{}
			dflt := transit.DefaultHandlerFunc(func(tag string, rep interface{}) (interface{}, error) {
				gotTag, gotRep = tag, rep
				return "handled", nil
			})

			c, err := f.NewCodec(transit.WithDefaultHandler(dflt))
			r.NoError(err)

			data, err := c.Marshal(transit.TaggedValue{Tag: "x", Rep: "abc"})
			r.NoError(err)

			v, err := c.Unmarshal(data)
			r.NoError(err)
			r.Equal("handled", v)
			r.Equal("x", gotTag)
			r.Equal("abc", gotRep)
		})

		t.Run("NoHandler", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			_, err = c.Marshal(&unregistered{Field: 1})
			r.Error(err)
			a.True(transit.IsNoHandler(err), "wrong error: %+v", err)

			var nhErr *transit.NoHandlerError
			r.True(errors.As(err, &nhErr))
			a.Equal(reflect.TypeOf(&unregistered{}), nhErr.Type)
			a.Contains(err.Error(), "unregistered")

			// nested values fail the same way
			_, err = c.Marshal([]interface{}{1, map[string]interface{}{"x": unregistered{}}})
			a.True(transit.IsNoHandler(err), "wrong error: %+v", err)
		})

		t.Run("OddCompositeMap", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			data, err := c.Marshal(transit.TaggedValue{Tag: "cmap", Rep: []interface{}{1, 2, 3}})
			r.NoError(err)

			_, err = c.Unmarshal(data)
			r.Error(err)
			a.True(transit.IsInvalidCompositeMap(err), "wrong error: %+v", err)
		})

		t.Run("Truncated", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			data, err := c.Marshal([]interface{}{"some", "values", 1, 2, 3})
			r.NoError(err)
			data = bytes.TrimSpace(data)

			_, err = c.Unmarshal(data[:len(data)-2])
			r.Error(err)
			a.True(transit.IsMalformedInput(err), "wrong error: %+v", err)
		})

		t.Run("Empty", func(t *testing.T) {
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			_, err = c.Unmarshal(nil)
			r.True(transit.IsMalformedInput(err), "wrong error: %+v", err)
		})

		t.Run("AlignedAfterSemanticError", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			var buf bytes.Buffer
			enc := c.NewEncoder(&buf)
			r.NoError(enc.Encode(transit.TaggedValue{Tag: "unknown", Rep: []interface{}{1}}))
			r.NoError(enc.Encode("next"))

			dec := c.NewDecoder(&buf)
			_, err = dec.Decode()
			a.True(transit.IsUnknownTag(err), "wrong error: %+v", err)

			v, err := dec.Decode()
			r.NoError(err)
			a.Equal("next", v)
		})

		t.Run("FailedWriteLeavesNothing", func(t *testing.T) {
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			var buf bytes.Buffer
			enc := c.NewEncoder(&buf)
			r.Error(enc.Encode([]interface{}{"fine", unregistered{}}))
			r.Equal(0, buf.Len())

			r.NoError(enc.Encode("fine"))
			v, err := c.NewDecoder(&buf).Decode()
			r.NoError(err)
			r.Equal("fine", v)
		})
	}
}
