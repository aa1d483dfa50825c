package errors

import (
	"encoding/json"
	"fmt"
)

// Error is a numbered failure kind. The package level values are shared;
// `Clone()` them before attaching data.
type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) Serialize() ([]byte, error) {
	return json.Marshal(o)
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) Clone() *Error {
	c := &Error{Code: o.Code, Message: o.Message, Data: make(map[string]interface{}, len(o.Data))}
	for k, v := range o.Data {
		c.Data[k] = v
	}

	return c
}

// Is compares the codes only, so a described or cloned error still matches
// its kind.
func (o *Error) Is(e *Error) bool {
	return o != nil && e != nil && o.Code == e.Code
}

// Describe returns a copy of the error whose message carries the
// underlying cause.
func (o *Error) Describe(cause interface{}) *Error {
	c := o.Clone()
	c.Message = fmt.Sprintf("%s: %v", o.Message, cause)
	return c
}

// FromError converts any error into `*Error`; errors which are not already
// `*Error` become `InternalError`.
func FromError(err error) *Error {
	switch e := err.(type) {
	case nil:
		return nil
	case *Error:
		return e
	default:
		return InternalError.Describe(err)
	}
}
