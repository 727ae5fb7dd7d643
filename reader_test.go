// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mindeco.de/log"

	"github.com/ssbc/transit"
)

var errBroken = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

func TestReadAll(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	rd, err := transit.NewReader(strings.NewReader("[1]\n[\"~:abcd\",\"^!\"]\n  \n"), transit.JSON)
	r.NoError(err)

	var got []interface{}
	r.NoError(rd.ReadAll(func(v interface{}) error {
		got = append(got, v)
		return nil
	}))
	r.Len(got, 2)
	a.Equal([]interface{}{int64(1)}, got[0])
	a.Equal([]interface{}{transit.Keyword("abcd"), transit.Keyword("abcd")}, got[1])

	_, err = rd.Read()
	a.Equal(io.EOF, err)

	// callback errors stop the iteration
	rd, err = transit.NewReader(strings.NewReader("[1] [2]"), transit.JSON)
	r.NoError(err)
	stop := errors.New("stop")
	n := 0
	err = rd.ReadAll(func(interface{}) error {
		n++
		return stop
	})
	a.Equal(stop, err)
	a.Equal(1, n)
}

func TestReadEmptyStream(t *testing.T) {
	for _, f := range []transit.Format{transit.JSON, transit.JSONVerbose, transit.MessagePack} {
		rd, err := transit.NewReader(&bytes.Buffer{}, f)
		require.NoError(t, err)
		_, err = rd.Read()
		assert.Equal(t, io.EOF, err, "format %s", f)
	}
}

func TestReadIOFailure(t *testing.T) {
	for _, f := range []transit.Format{transit.JSON, transit.MessagePack} {
		rd, err := transit.NewReader(failingReader{}, f)
		require.NoError(t, err)
		_, err = rd.Read()
		require.Error(t, err)
		assert.True(t, transit.IsIOFailure(err), "format %s: %v", f, err)
		assert.ErrorIs(t, err, errBroken)
	}
}

func TestReadTruncated(t *testing.T) {
	rd, err := transit.NewReader(strings.NewReader(`["^ ","a"`), transit.JSON)
	require.NoError(t, err)
	_, err = rd.Read()
	require.Error(t, err)
	assert.True(t, transit.IsMalformedInput(err), "wrong error: %v", err)
}

func TestReadKeepsAlignment(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)

	in := `["~#nope",1] ["~#cmap",[1]] ["~#'","~uxyz"] ["~#'","ok"]`
	rd, err := transit.NewReader(strings.NewReader(in), transit.JSON)
	r.NoError(err)

	_, err = rd.Read()
	a.True(transit.IsUnknownTag(err), "wrong error: %v", err)
	_, err = rd.Read()
	a.True(transit.IsInvalidCompositeMap(err), "wrong error: %v", err)
	_, err = rd.Read()
	a.Error(err)

	v, err := rd.Read()
	r.NoError(err)
	a.Equal("ok", v)
}

func TestReaderLogs(t *testing.T) {
	var logged bytes.Buffer
	logger := log.NewLogfmtLogger(&logged)

	_, err := readJSON(t, `["~#point",[1]]`, transit.WithLogger(logger), transit.WithDefaultHandler(transit.TaggedValueHandler))
	require.NoError(t, err)
	assert.Contains(t, logged.String(), "tag=point")

	logged.Reset()
	_, err = readJSON(t, `["~#point",[1]]`, transit.WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, logged.String(), "read aborted")

	_, err = transit.NewReader(&logged, transit.JSON, transit.WithLogger(nil))
	assert.Error(t, err)
}

func TestStreamSourceSink(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	ctx := context.Background()

	var buf bytes.Buffer
	w, err := transit.NewWriter(&buf, transit.MessagePack)
	r.NoError(err)

	sink := w.Sink()
	r.NoError(sink.Pour(ctx, transit.Keyword("first")))
	r.NoError(sink.Pour(ctx, map[string]int{"count": 2}))
	r.NoError(sink.Close())
	a.Error(sink.Pour(ctx, "late"))

	rd, err := transit.NewReader(&buf, transit.MessagePack)
	r.NoError(err)
	src := rd.Source()

	v, err := src.Next(ctx)
	r.NoError(err)
	a.Equal(transit.Keyword("first"), v)

	v, err = src.Next(ctx)
	r.NoError(err)
	a.Equal(map[interface{}]interface{}{"count": int64(2)}, v)

	_, err = src.Next(ctx)
	a.True(luigi.IsEOS(err), "expected end of stream, got %v", err)
}

func TestStreamPump(t *testing.T) {
	ctx := context.Background()

	rd, err := transit.NewReader(strings.NewReader(`["~#'",1] ["~#'","~:kw"] ["^ ","abcd",["~#set",[]]]`), transit.JSON)
	require.NoError(t, err)

	var out bytes.Buffer
	w, err := transit.NewWriter(&out, transit.JSONVerbose)
	require.NoError(t, err)

	require.NoError(t, luigi.Pump(ctx, w.Sink(), rd.Source()))
	assert.Equal(t, "{\"~#'\":1}\n{\"~#'\":\"~:kw\"}\n{\"abcd\":{\"~#set\":[]}}\n", out.String())
}

func TestStreamCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rd, err := transit.NewReader(strings.NewReader(`[1]`), transit.JSON)
	require.NoError(t, err)
	_, err = rd.Source().Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	w, err := transit.NewWriter(&bytes.Buffer{}, transit.JSON)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Sink().Pour(ctx, 1), context.Canceled)
}
