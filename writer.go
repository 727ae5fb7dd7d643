// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/transit/internal/token"
)

// Writer encodes values as transit. Every value is assembled in memory and
// handed to the stream with a single Write call, so a failed Write leaves
// nothing of the value behind. JSON values are newline terminated.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	format Format
	tw     token.Writer
	em     *emitter
	logger log.Logger
}

// NewWriter returns a Writer encoding values in format f to w. The Writer
// never closes w.
func NewWriter(w io.Writer, f Format, opts ...Option) (*Writer, error) {
	if !f.valid() {
		return nil, errors.Errorf("transit: invalid format %v", f)
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	tw := f.newWriter(w)
	return &Writer{
		format: f,
		tw:     tw,
		em:     newEmitter(cfg.reg, tw, f),
		logger: cfg.logger,
	}, nil
}

// Write encodes v as one top-level value.
func (w *Writer) Write(v interface{}) error {
	w.em.reset()
	if err := w.em.emitTop(v); err != nil {
		w.tw.Reset()
		level.Debug(w.logger).Log("event", "write aborted", "format", w.format, "type", fmt.Sprintf("%T", v), "err", err)
		return err
	}
	if err := w.tw.Flush(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}
