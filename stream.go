// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"go.mindeco.de/log/level"
)

// Source returns a luigi.Source over the values of r. It reports
// luigi.EOS{} at the end of the stream. The context is only checked
// between values; a blocking stream blocks Next.
func (r *Reader) Source() luigi.Source {
	return &readerSource{r: r}
}

type readerSource struct {
	r *Reader
}

func (src *readerSource) Next(ctx context.Context) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := src.r.Read()
	if err == io.EOF {
		return nil, luigi.EOS{}
	}
	return v, err
}

// Sink returns a luigi.Sink writing every poured value with w. Closing
// the sink does not close the underlying stream.
func (w *Writer) Sink() luigi.Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	w      *Writer
	closed bool
}

var errSinkClosed = errors.New("transit: pour on closed sink")

func (s *writerSink) Pour(ctx context.Context, v interface{}) error {
	if s.closed {
		return errSinkClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.w.Write(v)
}

func (s *writerSink) Close() error {
	s.closed = true
	return nil
}

func (s *writerSink) CloseWithError(err error) error {
	if err != nil {
		level.Debug(s.w.logger).Log("event", "sink closed", "err", err)
	}
	return s.Close()
}
