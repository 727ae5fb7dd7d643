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
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func defaultReadHandlers() map[string]ReadHandler {
	identity := ReadHandlerFunc(func(rep interface{}) (interface{}, error) { return rep, nil })

	return map[string]ReadHandler{
		"_": ReadHandlerFunc(func(interface{}) (interface{}, error) { return nil, nil }),
		":": stringReadHandler(func(s string) (interface{}, error) { return Keyword(s), nil }),
		"$": stringReadHandler(func(s string) (interface{}, error) { return Symbol(s), nil }),
		"?": stringReadHandler(func(s string) (interface{}, error) { return s == "t", nil }),
		"b": ReadHandlerFunc(readBytes),
		"d": stringReadHandler(readFloat),
		"i": stringReadHandler(readInt),
		"n": stringReadHandler(readBigInt),
		"f": stringReadHandler(readDecimal),
		"c": stringReadHandler(readChar),
		"t": stringReadHandler(readTime),
		"m": ReadHandlerFunc(readMillis),
		"u": ReadHandlerFunc(readUUID),
		"r": stringReadHandler(readURI),
		"z": stringReadHandler(readSpecialNumber),
		"'": identity,

		"set":  arrayReadHandler(func(a []interface{}) (interface{}, error) { return Set(a), nil }),
		"list": arrayReadHandler(func(a []interface{}) (interface{}, error) { return List(a), nil }),
		"link": ReadHandlerFunc(readLink),
		"cmap": cmapReadHandler{},

		"ints":    identity,
		"longs":   identity,
		"floats":  identity,
		"doubles": identity,
		"bools":   identity,
	}
}

// RatioReadHandler decodes "ratio" values into *big.Rat. It is not
// registered by default; readers without it see rationals through their
// DefaultHandler.
var RatioReadHandler ReadHandler = arrayReadHandler(func(a []interface{}) (interface{}, error) {
	if len(a) != 2 {
		return nil, errors.Errorf("ratio needs two elements, got %d", len(a))
	}
	num, err := toBigInt(a[0])
	if err != nil {
		return nil, errors.Wrap(err, "ratio numerator")
	}
	den, err := toBigInt(a[1])
	if err != nil {
		return nil, errors.Wrap(err, "ratio denominator")
	}
	if den.Sign() == 0 {
		return nil, errors.New("ratio with zero denominator")
	}
	return new(big.Rat).SetFrac(num, den), nil
})

func stringReadHandler(fn func(string) (interface{}, error)) ReadHandler {
	return ReadHandlerFunc(func(rep interface{}) (interface{}, error) {
		s, ok := rep.(string)
		if !ok {
			return nil, errors.Errorf("expected string representation, got %T", rep)
		}
		return fn(s)
	})
}

func arrayReadHandler(fn func([]interface{}) (interface{}, error)) ReadHandler {
	return ReadHandlerFunc(func(rep interface{}) (interface{}, error) {
		a, ok := rep.([]interface{})
		if !ok {
			return nil, errors.Errorf("expected array representation, got %T", rep)
		}
		return fn(a)
	})
}

func readBytes(rep interface{}) (interface{}, error) {
	switch rep := rep.(type) {
	case []byte:
		return rep, nil
	case string:
		return base64.StdEncoding.DecodeString(rep)
	}
	return nil, errors.Errorf("expected base64 string, got %T", rep)
}

func readFloat(s string) (interface{}, error) {
	return strconv.ParseFloat(s, 64)
}

// readInt falls back to a big integer when s does not fit into int64.
func readInt(s string) (interface{}, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return readBigInt(s)
	}
	return nil, err
}

func readBigInt(s string) (interface{}, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid big integer %q", s)
	}
	return i, nil
}

func readDecimal(s string) (interface{}, error) {
	return decimal.NewFromString(s)
}

func readChar(s string) (interface{}, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return nil, errors.Errorf("char needs exactly one character, got %q", s)
	}
	return Char(r), nil
}

func readTime(s string) (interface{}, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return t.UTC(), nil
}

func readMillis(rep interface{}) (interface{}, error) {
	var ms int64
	switch rep := rep.(type) {
	case int64:
		ms = rep
	case string:
		var err error
		if ms, err = strconv.ParseInt(rep, 10, 64); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("expected milliseconds, got %T", rep)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func readUUID(rep interface{}) (interface{}, error) {
	switch rep := rep.(type) {
	case string:
		return uuid.Parse(rep)
	case []interface{}:
		if len(rep) != 2 {
			return nil, errors.Errorf("uuid needs two halves, got %d", len(rep))
		}
		hi, ok1 := rep[0].(int64)
		lo, ok2 := rep[1].(int64)
		if !ok1 || !ok2 {
			return nil, errors.Errorf("uuid halves must be integers, got %T and %T", rep[0], rep[1])
		}
		var u uuid.UUID
		binary.BigEndian.PutUint64(u[:8], uint64(hi))
		binary.BigEndian.PutUint64(u[8:], uint64(lo))
		return u, nil
	}
	return nil, errors.Errorf("unexpected uuid representation %T", rep)
}

func readURI(s string) (interface{}, error) {
	return url.Parse(s)
}

func readSpecialNumber(s string) (interface{}, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	}
	return nil, errors.Errorf("unknown special number %q", s)
}

func readLink(rep interface{}) (interface{}, error) {
	var get func(string) interface{}
	switch m := rep.(type) {
	case map[interface{}]interface{}:
		get = func(k string) interface{} { return m[k] }
	case map[string]interface{}:
		get = func(k string) interface{} { return m[k] }
	default:
		return nil, errors.Errorf("expected link map, got %T", rep)
	}

	var l Link
	switch href := get("href").(type) {
	case *url.URL:
		l.Href = href
	case string:
		u, err := url.Parse(href)
		if err != nil {
			return nil, errors.Wrap(err, "link href")
		}
		l.Href = u
	case nil:
	default:
		return nil, errors.Errorf("link href of type %T", href)
	}

	str := func(k string) string {
		s, _ := get(k).(string)
		return s
	}
	l.Rel, l.Name, l.Render, l.Prompt = str("rel"), str("name"), str("render"), str("prompt")
	if l.Render != "" && l.Render != RenderLink && l.Render != RenderImage {
		return nil, errors.Errorf("link render must be %q or %q, got %q", RenderLink, RenderImage, l.Render)
	}
	return l, nil
}

func toBigInt(v interface{}) (*big.Int, error) {
	switch v := v.(type) {
	case *big.Int:
		return v, nil
	case int64:
		return big.NewInt(v), nil
	case string:
		i, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, errors.Errorf("invalid integer %q", v)
		}
		return i, nil
	}
	return nil, errors.Errorf("expected integer, got %T", v)
}

// cmapReadHandler decodes composite maps into CMap.
type cmapReadHandler struct{}

func (cmapReadHandler) MapBuilder() MapBuilder { return CMapBuilder{} }

func (cmapReadHandler) FromRep(rep interface{}) (interface{}, error) {
	a, ok := rep.([]interface{})
	if !ok {
		return nil, errors.Errorf("expected array representation, got %T", rep)
	}
	if len(a)%2 != 0 {
		return nil, &InvalidCompositeMapError{Len: len(a)}
	}
	m := make(CMap, 0, len(a)/2)
	for i := 0; i < len(a); i += 2 {
		m = append(m, MapEntry{Key: a[i], Value: a[i+1]})
	}
	return m, nil
}
