// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

/*
Package transit reads and writes transit values, a self-describing
encoding of rich values (keywords, symbols, times, UUIDs, URIs, big
numbers, sets, maps with non-string keys and user-defined types) on top
of JSON and MessagePack.

A Writer turns Go values into tagged representations with the write
handlers of its Registry and emits them as one top-level value per
Write. A Reader does the inverse, using read handlers keyed by tag.
Repeated map keys, keywords, symbols and tags are replaced by short
cache codes in the JSON and MessagePack formats; the cache starts over
with every top-level value.

	var buf bytes.Buffer
	w, err := transit.NewWriter(&buf, transit.JSON)
	if err != nil {
		return err
	}
	err = w.Write(map[string]interface{}{"when": time.Now(), "who": transit.Keyword("alice")})

Values the reader has no handler for are an UnknownTagError, unless a
DefaultHandler such as TaggedValueHandler is configured with
WithDefaultHandler.
*/
package transit
