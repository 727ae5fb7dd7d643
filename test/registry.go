// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package test

import (
	"sort"
	"testing"
)

// Formats holds the codecs under test, keyed by name. Format packages add
// themselves with Register from an init function.
var Formats map[string]Format

func init() {
	Formats = map[string]Format{}
}

// Register adds a format to the suites run by RunCodecTests.
func Register(name string, f Format) {
	Formats[name] = f
}

// RunCodecTests runs CodecTest for every registered format.
func RunCodecTests(t *testing.T) {
	names := make([]string, 0, len(Formats))
	for name := range Formats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t.Run(name, CodecTest(Formats[name]))
	}
}
