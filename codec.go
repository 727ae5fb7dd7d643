// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	cdc "github.com/ssbc/transit/codec"
)

// NewCodec returns a codec.Codec for format f. The options are validated
// once and applied to every Reader and Writer the codec creates.
func NewCodec(f Format, opts ...Option) (cdc.Codec, error) {
	if !f.valid() {
		return nil, errors.Errorf("transit: invalid format %v", f)
	}
	if _, err := newConfig(opts); err != nil {
		return nil, err
	}
	return &codec{format: f, opts: opts}, nil
}

type codec struct {
	format Format
	opts   []Option
}

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, c.format, c.opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Write(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *codec) Unmarshal(data []byte) (interface{}, error) {
	r, err := NewReader(bytes.NewReader(data), c.format, c.opts...)
	if err != nil {
		return nil, err
	}
	v, err := r.Read()
	if err == io.EOF {
		return nil, malformed("empty input", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}

	if _, err := r.Read(); err != io.EOF {
		if err == nil {
			return nil, malformed("trailing data after value", nil)
		}
		return nil, errors.Wrap(err, "transit: trailing data after value")
	}
	return v, nil
}

func (c *codec) NewEncoder(w io.Writer) cdc.Encoder {
	enc, err := NewWriter(w, c.format, c.opts...)
	if err != nil {
		return errEncoder{err}
	}
	return encoder{enc}
}

func (c *codec) NewDecoder(r io.Reader) cdc.Decoder {
	dec, err := NewReader(r, c.format, c.opts...)
	if err != nil {
		return errDecoder{err}
	}
	return dec
}

// Decode implements codec.Decoder.
func (r *Reader) Decode() (interface{}, error) { return r.Read() }

type encoder struct{ w *Writer }

func (e encoder) Encode(v interface{}) error { return e.w.Write(v) }

// NewCodec already validated the options, these only guard against
// registries that were changed in between.
type errEncoder struct{ err error }

func (e errEncoder) Encode(interface{}) error { return e.err }

type errDecoder struct{ err error }

func (d errDecoder) Decode() (interface{}, error) { return nil, d.err }
