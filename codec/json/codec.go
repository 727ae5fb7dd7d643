// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package json provides the transit JSON codecs.
package json

import (
	"github.com/ssbc/transit"
	cdc "github.com/ssbc/transit/codec"
)

// NewCodec creates a compact transit JSON codec.
func NewCodec(opts ...transit.Option) (cdc.Codec, error) {
	return transit.NewCodec(transit.JSON, opts...)
}

// NewVerboseCodec creates a codec for the human readable JSON flavour.
func NewVerboseCodec(opts ...transit.Option) (cdc.Codec, error) {
	return transit.NewCodec(transit.JSONVerbose, opts...)
}
