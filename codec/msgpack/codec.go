// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package msgpack provides the transit MessagePack codec.
package msgpack

import (
	"github.com/ssbc/transit"
	cdc "github.com/ssbc/transit/codec"
)

// NewCodec creates a transit MessagePack codec.
func NewCodec(opts ...transit.Option) (cdc.Codec, error) {
	return transit.NewCodec(transit.MessagePack, opts...)
}
