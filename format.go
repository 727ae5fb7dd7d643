// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ssbc/transit/internal/jsontok"
	"github.com/ssbc/transit/internal/msgpacktok"
	"github.com/ssbc/transit/internal/token"
)

// Format selects the container format and its transit flavour.
type Format uint8

const (
	// JSON writes maps as arrays and uses the rolling cache.
	JSON Format = iota + 1
	// JSONVerbose writes maps as objects and never uses cache codes. It is
	// meant for people, not for exchange.
	JSONVerbose
	// MessagePack uses native maps and the rolling cache.
	MessagePack
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case JSONVerbose:
		return "json-verbose"
	case MessagePack:
		return "msgpack"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat returns the Format named s, as printed by Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return JSON, nil
	case "json-verbose", "json_verbose":
		return JSONVerbose, nil
	case "msgpack", "messagepack":
		return MessagePack, nil
	}
	return 0, errors.Errorf("transit: unknown format %q", s)
}

func (f Format) valid() bool {
	return f >= JSON && f <= MessagePack
}

func (f Format) newSource(r io.Reader) token.Source {
	if f == MessagePack {
		return msgpacktok.NewSource(r)
	}
	return jsontok.NewSource(r)
}

func (f Format) newWriter(w io.Writer) token.Writer {
	if f == MessagePack {
		return msgpacktok.NewWriter(w)
	}
	return jsontok.NewWriter(w)
}
