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

func CodecTestStream(f Format) func(*testing.T) {
	type testcase struct {
		name   string
		values []interface{}
		result []interface{}
	}

	tcs := []testcase{
		{
			name:   "scalars",
			values: []interface{}{1, "two", 3.5, nil, true},
			result: []interface{}{int64(1), "two", 3.5, nil, true},
		},
		{
			name:   "containers",
			values: []interface{}{[]interface{}{1}, map[string]string{"k": "v"}, transit.Set{transit.Keyword("key")}},
			result: []interface{}{[]interface{}{int64(1)}, map[interface{}]interface{}{"k": "v"}, transit.Set{transit.Keyword("key")}},
		},
		{
			name: "empty",
		},
	}

	mkTest := func(tc testcase) func(*testing.T) {
		return func(t *testing.T) {
			a := assert.New(t)
			r := require.New(t)

			c, err := f.NewCodec()
			r.NoError(err, "error creating codec")

			var buf bytes.Buffer
			enc := c.NewEncoder(&buf)
			for i, v := range tc.values {
				r.NoError(enc.Encode(v), "error encoding value %d", i)
			}

			dec := c.NewDecoder(&buf)
			for i, exp := range tc.result {
				v, err := dec.Decode()
				r.NoError(err, "error decoding value %d", i)
				a.Equal(exp, v, "value %d", i)
			}

			_, err = dec.Decode()
			a.Equal(io.EOF, err, "expected end of stream")
		}
	}

	return func(t *testing.T) {
		for _, tc := range tcs {
			t.Run(tc.name, mkTest(tc))
		}
	}
}
