// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"github.com/pkg/errors"
	"go.mindeco.de/log"
)

type config struct {
	reg    *Registry
	arrays ArrayBuilder
	maps   MapBuilder
	logger log.Logger

	// deferred registrations, applied to the private registry copy
	setup []func(*Registry) error
}

// Option configures a Reader, Writer or Codec.
type Option func(*config) error

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		arrays: SliceBuilder{},
		maps:   GoMapBuilder{},
		logger: log.NewNopLogger(),
	}
	for i, o := range opts {
		if err := o(cfg); err != nil {
			return nil, errors.Wrapf(err, "transit: option %d", i)
		}
	}

	if cfg.reg == nil {
		cfg.reg = NewRegistry()
	} else {
		cfg.reg = cfg.reg.Clone()
	}
	for _, fn := range cfg.setup {
		if err := fn(cfg.reg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithRegistry starts from a copy of reg instead of NewRegistry. Later
// changes to reg do not affect the Reader or Writer.
func WithRegistry(reg *Registry) Option {
	return func(c *config) error {
		if reg == nil {
			return errors.New("nil registry")
		}
		c.reg = reg
		return nil
	}
}

// WithWriteHandler registers a write handler.
func WithWriteHandler(key TypeKey, h WriteHandler) Option {
	return func(c *config) error {
		c.setup = append(c.setup, func(r *Registry) error {
			r.Register(key, h)
			return nil
		})
		return nil
	}
}

// WithReadHandler registers a read handler for tag.
func WithReadHandler(tag string, h ReadHandler) Option {
	return func(c *config) error {
		c.setup = append(c.setup, func(r *Registry) error {
			return r.RegisterRead(tag, h)
		})
		return nil
	}
}

// WithDefaultHandler sets the handler for tags without read handler.
func WithDefaultHandler(d DefaultHandler) Option {
	return func(c *config) error {
		c.setup = append(c.setup, func(r *Registry) error {
			r.SetDefault(d)
			return nil
		})
		return nil
	}
}

// WithArrayBuilder replaces the builder for decoded arrays.
func WithArrayBuilder(b ArrayBuilder) Option {
	return func(c *config) error {
		if b == nil {
			return errors.New("nil array builder")
		}
		c.arrays = b
		return nil
	}
}

// WithMapBuilder replaces the builder for decoded maps.
func WithMapBuilder(b MapBuilder) Option {
	return func(c *config) error {
		if b == nil {
			return errors.New("nil map builder")
		}
		c.maps = b
		return nil
	}
}

// WithLogger sets the logger for debug output. The default discards
// everything.
func WithLogger(l log.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.logger = l
		return nil
	}
}
