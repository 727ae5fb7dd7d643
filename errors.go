// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// ErrGroundTag is returned when a read handler is registered for one of the
// ground tags, whose decoding is fixed.
var ErrGroundTag = errors.New("transit: ground tags cannot be overridden")

// MalformedInputError means the token stream does not follow the transit
// grammar: unexpected tokens, bad cache codes, truncated input.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transit: malformed input: %s: %v", e.Reason, e.Err)
	}
	return "transit: malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func malformed(reason string, err error) error {
	return &MalformedInputError{Reason: reason, Err: err}
}

// UnknownTagError is returned for a tag without read handler when no default
// handler is configured.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("transit: no read handler for tag %q", e.Tag)
}

// InvalidCompositeMapError is returned for a composite map with an odd
// number of key and value elements.
type InvalidCompositeMapError struct {
	Len int
}

func (e *InvalidCompositeMapError) Error() string {
	return fmt.Sprintf("transit: composite map with odd element count %d", e.Len)
}

// NoHandlerError is returned when neither the type of a value nor any of the
// registered capabilities it satisfies has a write handler.
type NoHandlerError struct {
	Type reflect.Type
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("transit: no write handler for type %v", e.Type)
}

// IOError wraps a failure of the underlying stream.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("transit: %s failed: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsMalformedInput returns whether err is or wraps a MalformedInputError.
func IsMalformedInput(err error) bool {
	var e *MalformedInputError
	return errors.As(err, &e)
}

// IsUnknownTag returns whether err is or wraps an UnknownTagError.
func IsUnknownTag(err error) bool {
	var e *UnknownTagError
	return errors.As(err, &e)
}

// IsInvalidCompositeMap returns whether err is or wraps an InvalidCompositeMapError.
func IsInvalidCompositeMap(err error) bool {
	var e *InvalidCompositeMapError
	return errors.As(err, &e)
}

// IsNoHandler returns whether err is or wraps a NoHandlerError.
func IsNoHandler(err error) bool {
	var e *NoHandlerError
	return errors.As(err, &e)
}

// IsIOFailure returns whether err is or wraps an IOError.
func IsIOFailure(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}
