// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"github.com/ssbc/transit/codec/json"
	mtest "github.com/ssbc/transit/test"
)

func init() {
	mtest.Register("json", mtest.Format{NewCodec: json.NewCodec, Caching: true})
	mtest.Register("json-verbose", mtest.Format{NewCodec: json.NewVerboseCodec})
}
