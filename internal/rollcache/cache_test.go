// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package rollcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) (interface{}, error) { return s, nil }

func TestCodes(t *testing.T) {
	a := assert.New(t)

	a.Equal("^!", indexToCode(0))
	a.Equal("^\"", indexToCode(1))
	a.Equal("^~", indexToCode(93))
	a.Equal("^\"!", indexToCode(94))
	a.Equal("^~~", indexToCode(Size-1))

	for _, i := range []int{0, 1, 93, 94, 95, 1000, Size - 1} {
		idx, err := codeToIndex(indexToCode(i))
		a.NoError(err)
		a.Equal(i, idx)
	}

	_, err := codeToIndex("^")
	a.ErrorIs(err, ErrBadCode)
	_, err = codeToIndex("^abc")
	a.ErrorIs(err, ErrBadCode)
	_, err = codeToIndex("^\x01")
	a.ErrorIs(err, ErrBadCode)
}

func TestIsCacheCode(t *testing.T) {
	a := assert.New(t)
	a.True(IsCacheCode("^!"))
	a.True(IsCacheCode("^!!"))
	a.False(IsCacheCode(MapAsArray))
	a.False(IsCacheCode("^"))
	a.False(IsCacheCode("foo"))
	a.False(IsCacheCode(""))
}

func TestCacheable(t *testing.T) {
	a := assert.New(t)
	a.False(Cacheable("abc", true), "too short")
	a.True(Cacheable("abcd", true))
	a.False(Cacheable("abcd", false), "plain strings are only cached as keys")
	a.True(Cacheable("~#tag", false))
	a.True(Cacheable("~:foo", false))
	a.True(Cacheable("~$bar", false))
	a.False(Cacheable("~ifoo", false))
	a.False(Cacheable("~#a", false), "too short")
}

func TestWriteCache(t *testing.T) {
	r := require.New(t)
	c := NewWriteCache()

	r.Equal("name", c.Encode("name", true))
	r.Equal("^!", c.Encode("name", true))
	r.Equal("~#point", c.Encode("~#point", false))
	r.Equal("^\"", c.Encode("~#point", false))
	r.Equal("name", c.Encode("name", false), "plain strings outside of keys stay literal")

	r.Equal("abc", c.Encode("abc", true))
	r.Equal("abc", c.Encode("abc", true))
	r.Equal(2, c.Len())

	c.Reset()
	r.Equal(0, c.Len())
	r.Equal("name", c.Encode("name", true))
}

func TestReadCache(t *testing.T) {
	r := require.New(t)
	c := NewReadCache()

	v, err := c.Decode("name", true, identity)
	r.NoError(err)
	r.Equal("name", v)

	v, err = c.Decode("^!", true, identity)
	r.NoError(err)
	r.Equal("name", v)

	_, err = c.Decode("^\"", false, identity)
	r.ErrorIs(err, ErrBadCode)

	v, err = c.Decode("abc", true, identity)
	r.NoError(err)
	r.Equal("abc", v)
	r.Equal(1, c.Len())

	c.Reset()
	_, err = c.Decode("^!", true, identity)
	r.ErrorIs(err, ErrBadCode)
}

func TestReadCacheStoresParsedValue(t *testing.T) {
	r := require.New(t)
	c := NewReadCache()

	upper := func(s string) (interface{}, error) { return len(s), nil }
	v, err := c.Decode("~:keyword", false, upper)
	r.NoError(err)
	r.Equal(9, v)

	v, err = c.Decode("^!", false, upper)
	r.NoError(err)
	r.Equal(9, v)
}

func TestRollover(t *testing.T) {
	r := require.New(t)
	wc := NewWriteCache()
	rc := NewReadCache()

	for i := 0; i < Size+10; i++ {
		s := fmt.Sprintf("key-%d", i)
		enc := wc.Encode(s, true)
		r.Equal(s, enc, "first occurrence %d must be literal", i)

		dec, err := rc.Decode(enc, true, identity)
		r.NoError(err)
		r.Equal(s, dec)
	}
	r.Equal(10, wc.Len())
	r.Equal(10, rc.Len())

	last := fmt.Sprintf("key-%d", Size+9)
	code := wc.Encode(last, true)
	r.Equal(indexToCode(9), code)
	dec, err := rc.Decode(code, true, identity)
	r.NoError(err)
	r.Equal(last, dec)
}
