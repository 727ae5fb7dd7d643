// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/transit"
)

func CodecTestCache(f Format) func(*testing.T) {
	return func(t *testing.T) {
		t.Run("RepeatedKey", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			v := []interface{}{
				map[string]interface{}{"name": "alice"},
				map[string]interface{}{"name": "bob"},
			}
			data, err := c.Marshal(v)
			r.NoError(err)

			if f.Caching {
				a.Equal(1, bytes.Count(data, []byte("name")), "second key should be a cache code: %q", data)
				a.Contains(string(data), "^!")
			} else {
				a.Equal(2, bytes.Count(data, []byte("name")), "%q", data)
			}

			got, err := c.Unmarshal(data)
			r.NoError(err)
			r.Equal([]interface{}{
				map[interface{}]interface{}{"name": "alice"},
				map[interface{}]interface{}{"name": "bob"},
			}, got)
		})

		t.Run("RepeatedKeyword", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			v := []interface{}{transit.Keyword("status"), transit.Keyword("status"), "status", "status"}
			data, err := c.Marshal(v)
			r.NoError(err)

			// plain strings are never cached, keywords are
			if f.Caching {
				a.Equal(3, bytes.Count(data, []byte("status")), "%q", data)
			} else {
				a.Equal(4, bytes.Count(data, []byte("status")), "%q", data)
			}

			got, err := c.Unmarshal(data)
			r.NoError(err)
			r.Equal([]interface{}{transit.Keyword("status"), transit.Keyword("status"), "status", "status"}, got)
		})

		t.Run("ShortKeysNotCached", func(t *testing.T) {
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			v := []interface{}{map[string]int{"abc": 1}, map[string]int{"abc": 2}}
			data, err := c.Marshal(v)
			r.NoError(err)
			r.Equal(2, bytes.Count(data, []byte("abc")), "%q", data)
		})

		t.Run("ResetPerValue", func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			var buf bytes.Buffer
			enc := c.NewEncoder(&buf)
			v := map[string]interface{}{"name": "alice"}
			r.NoError(enc.Encode(v))
			r.NoError(enc.Encode(v))

			a.Equal(2, bytes.Count(buf.Bytes(), []byte("name")), "cache must not leak across values: %q", buf.Bytes())

			dec := c.NewDecoder(&buf)
			for i := 0; i < 2; i++ {
				got, err := dec.Decode()
				r.NoError(err, "value %d", i)
				a.Equal(map[interface{}]interface{}{"name": "alice"}, got)
			}
			_, err = dec.Decode()
			a.Equal(io.EOF, err)
		})

		t.Run("ManyKeys", func(t *testing.T) {
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err)

			// enough distinct keys to need two digit codes
			m := make(map[string]interface{})
			exp := make(map[interface{}]interface{})
			for i := 0; i < 300; i++ {
				k := "key-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
				m[k] = i
				exp[k] = int64(i)
			}
			v := []interface{}{m, m}
			data, err := c.Marshal(v)
			r.NoError(err)

			got, err := c.Unmarshal(data)
			r.NoError(err)
			r.Equal([]interface{}{exp, exp}, got)
		})
	}
}
