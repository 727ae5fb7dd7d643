// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package jsontok adapts JSON text to the token stream.
//
// Decoding reads one complete JSON value per call with ugorji's JSON
// handle and flattens it into tokens. Transit's compact JSON keeps every
// map as an array, so element order is fully preserved. Object members
// (only produced by the verbose flavour, which never uses cache codes)
// are replayed in sorted key order.
package jsontok

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"github.com/ssbc/transit/internal/token"
)

var handle = newHandle()

func newHandle() *codec.JsonHandle {
	h := new(codec.JsonHandle)
	h.HTMLCharsAsIs = true
	h.SignedInteger = true
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

type source struct {
	br  *bufio.Reader
	dec *codec.Decoder
}

// NewSource returns a token.Source reading concatenated JSON values from r.
// Values may be separated by whitespace.
func NewSource(r io.Reader) token.Source {
	br := bufio.NewReader(r)
	return &source{br: br, dec: codec.NewDecoder(br, handle)}
}

func (s *source) Value() (token.Reader, error) {
	if err := s.skipSpace(); err != nil {
		return nil, err
	}

	var v interface{}
	if err := s.dec.Decode(&v); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	toks, err := flatten(make([]token.Token, 0, 16), v)
	if err != nil {
		return nil, err
	}
	return &sliceReader{toks: toks}, nil
}

// skipSpace returns io.EOF if only whitespace is left.
func (s *source) skipSpace() error {
	for {
		c, err := s.br.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return s.br.UnreadByte()
	}
}

func flatten(toks []token.Token, v interface{}) ([]token.Token, error) {
	var err error
	switch v := v.(type) {
	case nil:
		return append(toks, token.Token{Kind: token.Nil}), nil
	case bool:
		return append(toks, token.Token{Kind: token.Bool, Bool: v}), nil
	case int64:
		return append(toks, token.Token{Kind: token.Int, Int: v}), nil
	case uint64:
		return append(toks, token.Token{Kind: token.Uint, Uint: v}), nil
	case float64:
		return append(toks, token.Token{Kind: token.Float, Float: v}), nil
	case string:
		return append(toks, token.Token{Kind: token.String, Str: v}), nil
	case []byte:
		return append(toks, token.Token{Kind: token.String, Str: string(v)}), nil

	case []interface{}:
		toks = append(toks, token.Token{Kind: token.Array, Len: len(v)})
		for _, elem := range v {
			if toks, err = flatten(toks, elem); err != nil {
				return nil, err
			}
		}
		return toks, nil

	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		toks = append(toks, token.Token{Kind: token.Map, Len: len(v)})
		for _, k := range keys {
			toks = append(toks, token.Token{Kind: token.String, Str: k})
			if toks, err = flatten(toks, v[k]); err != nil {
				return nil, err
			}
		}
		return toks, nil

	case map[interface{}]interface{}:
		keys := make([]interface{}, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})

		toks = append(toks, token.Token{Kind: token.Map, Len: len(v)})
		for _, k := range keys {
			if toks, err = flatten(toks, k); err != nil {
				return nil, err
			}
			if toks, err = flatten(toks, v[k]); err != nil {
				return nil, err
			}
		}
		return toks, nil
	}
	return nil, errors.Errorf("jsontok: unexpected decoded type %T", v)
}

type sliceReader struct {
	toks []token.Token
	pos  int
}

func (r *sliceReader) Next() (token.Token, error) {
	if r.pos >= len(r.toks) {
		return token.Token{}, io.ErrUnexpectedEOF
	}
	t := r.toks[r.pos]
	r.pos++
	return t, nil
}

type frame struct {
	isMap bool
	n     int
}

// Writer renders tokens as JSON text. Values are collected in memory and
// written to the underlying stream, newline terminated, by Flush.
type Writer struct {
	w       io.Writer
	buf     bytes.Buffer
	scratch []byte
	enc     *codec.Encoder
	stack   []frame
}

var _ token.Writer = (*Writer)(nil)

// NewWriter returns a Writer that flushes to w.
func NewWriter(w io.Writer) *Writer {
	jw := &Writer{w: w}
	jw.enc = codec.NewEncoderBytes(&jw.scratch, handle)
	return jw
}

// sep writes the separator that precedes the next element of the
// innermost container.
func (w *Writer) sep() {
	if len(w.stack) == 0 {
		return
	}
	f := &w.stack[len(w.stack)-1]
	switch {
	case f.isMap && f.n%2 == 1:
		w.buf.WriteByte(':')
	case f.n > 0:
		w.buf.WriteByte(',')
	}
	f.n++
}

func (w *Writer) Nil() error {
	w.sep()
	w.buf.WriteString("null")
	return nil
}

func (w *Writer) Bool(b bool) error {
	w.sep()
	if b {
		w.buf.WriteString("true")
	} else {
		w.buf.WriteString("false")
	}
	return nil
}

func (w *Writer) Int(i int64) error {
	w.sep()
	w.scratch = strconv.AppendInt(w.scratch[:0], i, 10)
	w.buf.Write(w.scratch)
	return nil
}

func (w *Writer) Float(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Errorf("jsontok: %v has no JSON representation", f)
	}
	w.sep()
	w.scratch = appendFloat(w.scratch[:0], f)
	w.buf.Write(w.scratch)
	return nil
}

// appendFloat keeps a fraction or exponent in the output so the number
// reads back as a float.
func appendFloat(b []byte, f float64) []byte {
	b = strconv.AppendFloat(b, f, 'g', -1, 64)
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, '.', '0')
	}
	return b
}

func (w *Writer) String(s string) error {
	w.sep()
	w.scratch = w.scratch[:0]
	w.enc.ResetBytes(&w.scratch)
	if err := w.enc.Encode(s); err != nil {
		return errors.Wrap(err, "jsontok: failed to encode string")
	}
	w.buf.Write(w.scratch)
	return nil
}

func (w *Writer) ArrayStart(int) error {
	w.sep()
	w.buf.WriteByte('[')
	w.stack = append(w.stack, frame{})
	return nil
}

func (w *Writer) ArrayEnd() error {
	if err := w.pop(false); err != nil {
		return err
	}
	w.buf.WriteByte(']')
	return nil
}

func (w *Writer) MapStart(int) error {
	w.sep()
	w.buf.WriteByte('{')
	w.stack = append(w.stack, frame{isMap: true})
	return nil
}

func (w *Writer) MapEnd() error {
	if err := w.pop(true); err != nil {
		return err
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *Writer) pop(isMap bool) error {
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].isMap != isMap {
		return errors.New("jsontok: unbalanced container end")
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

func (w *Writer) Flush() error {
	if len(w.stack) != 0 {
		return errors.New("jsontok: flush inside open container")
	}
	w.buf.WriteByte('\n')
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) Reset() {
	w.buf.Reset()
	w.stack = w.stack[:0]
}
