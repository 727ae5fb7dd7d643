// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"github.com/ssbc/transit/codec/msgpack"
	mtest "github.com/ssbc/transit/test"
)

func init() {
	mtest.Register("msgpack", mtest.Format{NewCodec: msgpack.NewCodec, Caching: true})
}
