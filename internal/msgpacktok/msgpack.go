// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package msgpacktok adapts MessagePack to the token stream.
//
// Container headers are read one at a time, so map entries reach the
// parser in wire order. Each top-level value is first copied out of the
// stream as a raw message, which keeps the stream on a value boundary
// even when the transit layer rejects the value.
package msgpacktok

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/ssbc/transit/internal/token"
)

type source struct {
	br  *bufio.Reader
	dec *msgpack.Decoder
}

// NewSource returns a token.Source reading concatenated MessagePack values
// from r.
func NewSource(r io.Reader) token.Source {
	br := bufio.NewReader(r)
	return &source{br: br, dec: msgpack.NewDecoder(br)}
}

func (s *source) Value() (token.Reader, error) {
	if _, err := s.br.Peek(1); err != nil {
		return nil, err
	}

	raw, err := s.dec.DecodeRaw()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return &valueReader{dec: msgpack.NewDecoder(bytes.NewReader(raw))}, nil
}

type valueReader struct {
	dec *msgpack.Decoder
}

func (r *valueReader) Next() (token.Token, error) {
	c, err := r.dec.PeekCode()
	if err != nil {
		return token.Token{}, err
	}

	switch {
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := r.dec.DecodeMapLen()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.Map, Len: n}, nil

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := r.dec.DecodeArrayLen()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.Array, Len: n}, nil
	}

	v, err := r.dec.DecodeInterfaceLoose()
	if err != nil {
		return token.Token{}, err
	}
	switch v := v.(type) {
	case nil:
		return token.Token{Kind: token.Nil}, nil
	case bool:
		return token.Token{Kind: token.Bool, Bool: v}, nil
	case int64:
		return token.Token{Kind: token.Int, Int: v}, nil
	case uint64:
		return token.Token{Kind: token.Uint, Uint: v}, nil
	case float64:
		return token.Token{Kind: token.Float, Float: v}, nil
	case string:
		return token.Token{Kind: token.String, Str: v}, nil
	case []byte:
		return token.Token{Kind: token.Bytes, Bytes: v}, nil
	}
	return token.Token{}, errors.Errorf("msgpacktok: unsupported value of type %T (code 0x%x)", v, c)
}

// Writer renders tokens as MessagePack. Values are collected in memory
// and written to the underlying stream by Flush.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
	enc *msgpack.Encoder
}

var _ token.Writer = (*Writer)(nil)

// NewWriter returns a Writer that flushes to w.
func NewWriter(w io.Writer) *Writer {
	mw := &Writer{w: w}
	mw.enc = msgpack.NewEncoder(&mw.buf)
	return mw
}

func (w *Writer) Nil() error            { return w.enc.EncodeNil() }
func (w *Writer) Bool(b bool) error     { return w.enc.EncodeBool(b) }
func (w *Writer) Int(i int64) error     { return w.enc.EncodeInt(i) }
func (w *Writer) Float(f float64) error { return w.enc.EncodeFloat64(f) }
func (w *Writer) String(s string) error { return w.enc.EncodeString(s) }

func (w *Writer) ArrayStart(n int) error { return w.enc.EncodeArrayLen(n) }
func (w *Writer) ArrayEnd() error        { return nil }
func (w *Writer) MapStart(n int) error   { return w.enc.EncodeMapLen(n) }
func (w *Writer) MapEnd() error          { return nil }

func (w *Writer) Flush() error {
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) Reset() {
	w.buf.Reset()
}
