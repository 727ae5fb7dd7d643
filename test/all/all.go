// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package all

import (
	// import to register the formats under test
	_ "github.com/ssbc/transit/codec/json/test"
	_ "github.com/ssbc/transit/codec/msgpack/test"
)
