// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"io"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/transit/internal/rollcache"
	"github.com/ssbc/transit/internal/token"
)

// watchReader remembers the last failure of the wrapped stream, which
// separates stream errors from syntax errors reported by the container
// decoder.
type watchReader struct {
	r   io.Reader
	err error
}

func (w *watchReader) Read(p []byte) (int, error) {
	n, err := w.r.Read(p)
	if err != nil && err != io.EOF {
		w.err = err
	}
	return n, err
}

// Reader decodes a stream of transit values.
//
// Each call to Read consumes one complete container value from the stream
// before decoding it. A value rejected by the transit layer (unknown tag,
// odd composite map, failing handler) therefore leaves the stream at the
// start of the next value and Read may be called again. After a container
// error (invalid JSON, truncated MessagePack) or a stream error the
// position is undefined.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	format Format
	watch  *watchReader
	src    token.Source
	parser *parser
	logger log.Logger
}

// NewReader returns a Reader decoding values in format f from r. The
// Reader never closes r.
func NewReader(r io.Reader, f Format, opts ...Option) (*Reader, error) {
	if !f.valid() {
		return nil, errors.Errorf("transit: invalid format %v", f)
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	watch := &watchReader{r: r}
	p := &parser{
		reg:    cfg.reg,
		arrays: cfg.arrays,
		maps:   cfg.maps,
		logger: cfg.logger,
	}
	if f != JSONVerbose {
		p.cache = rollcache.NewReadCache()
	}

	return &Reader{
		format: f,
		watch:  watch,
		src:    f.newSource(watch),
		parser: p,
		logger: cfg.logger,
	}, nil
}

// Read decodes the next top-level value. It returns io.EOF, unwrapped,
// when the stream ends on a value boundary.
func (r *Reader) Read() (interface{}, error) {
	r.watch.err = nil
	toks, err := r.src.Value()
	if err != nil {
		switch {
		case r.watch.err != nil:
			return nil, &IOError{Op: "read", Err: r.watch.err}
		case err == io.EOF:
			return nil, io.EOF
		}
		return nil, malformed(r.format.String()+" value", err)
	}

	if r.parser.cache != nil {
		r.parser.cache.Reset()
	}
	r.parser.toks = toks
	defer func() { r.parser.toks = nil }()

	v, err := r.parser.value(false)
	if err != nil {
		level.Debug(r.logger).Log("event", "read aborted", "format", r.format, "err", err)
		return nil, err
	}
	return v, nil
}

// ReadAll calls fn with every value until the stream is exhausted. It stops
// at the first error, from decoding or from fn. End of stream is not an
// error.
func (r *Reader) ReadAll(fn func(v interface{}) error) error {
	for {
		v, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
