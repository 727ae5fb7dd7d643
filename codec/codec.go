// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package codec defines the value codec interface implemented by the
// transit formats.
package codec

import (
	"io"
)

// Codec converts between values and their serialized form.
type Codec interface {
	// Marshal encodes a single value and returns the serialized byte slice.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal decodes and returns the single value stored in data.
	Unmarshal(data []byte) (interface{}, error)

	// NewDecoder returns a Decoder reading a sequence of values from r.
	NewDecoder(r io.Reader) Decoder
	// NewEncoder returns an Encoder writing a sequence of values to w.
	NewEncoder(w io.Writer) Encoder
}

// Decoder reads one value per call and returns io.EOF at the end of the
// stream.
type Decoder interface {
	Decode() (interface{}, error)
}

// Encoder writes one value per call.
type Encoder interface {
	Encode(v interface{}) error
}
