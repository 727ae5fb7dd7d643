// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package test holds test suites every transit format has to pass.
package test

import (
	"testing"

	"github.com/ssbc/transit"
	"github.com/ssbc/transit/codec"
)

// NewCodecFunc returns a codec configured with opts.
type NewCodecFunc func(opts ...transit.Option) (codec.Codec, error)

// Format describes a codec under test.
type Format struct {
	NewCodec NewCodecFunc

	// Caching is set for formats that replace repeated keys and tags with
	// cache codes.
	Caching bool
}

func CodecTest(f Format) func(*testing.T) {
	return func(t *testing.T) {
		t.Run("RoundTrip", CodecTestRoundTrip(f))
		t.Run("Cache", CodecTestCache(f))
		t.Run("Errors", CodecTestErrors(f))
		t.Run("Stream", CodecTestStream(f))
	}
}
