// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package transit

// Marshaler is implemented by types that describe their own transit
// encoding. NewRegistry registers it as a capability, so such types need no
// explicit write handler. The tag rules of WriteHandler apply.
type Marshaler interface {
	TransitTag() string
	TransitRep() interface{}
}

type marshalerHandler struct{}

func (marshalerHandler) Tag(v interface{}) string      { return v.(Marshaler).TransitTag() }
func (marshalerHandler) Rep(v interface{}) interface{} { return v.(Marshaler).TransitRep() }
func (marshalerHandler) StringRep(v interface{}) (string, bool) {
	s, ok := v.(Marshaler).TransitRep().(string)
	return s, ok
}
