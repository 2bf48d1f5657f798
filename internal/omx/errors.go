package omx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a component result code. ErrorNone is never returned as an error;
// successful calls return nil.
type Error uint32

const (
	ErrorNone               Error = 0
	ErrorUndefined          Error = 0x80001001
	ErrorBadParameter       Error = 0x80001005
	ErrorNoMore             Error = 0x8000100E
	ErrorIncorrectState     Error = 0x80001018
	ErrorUnsupportedSetting Error = 0x80001019
	ErrorUnsupportedIndex   Error = 0x8000101A
	ErrorBadPortIndex       Error = 0x8000101B
)

var errorNames = map[Error]string{
	ErrorNone:               "none",
	ErrorUndefined:          "undefined",
	ErrorBadParameter:       "bad parameter",
	ErrorNoMore:             "no more",
	ErrorIncorrectState:     "incorrect state",
	ErrorUnsupportedSetting: "unsupported setting",
	ErrorUnsupportedIndex:   "unsupported index",
	ErrorBadPortIndex:       "bad port index",
}

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return "omx: " + name
	}
	return fmt.Sprintf("omx: error 0x%08x", uint32(e))
}

// Code maps err onto a result code. nil maps to ErrorNone, errors that do not
// wrap an Error map to ErrorUndefined.
func Code(err error) Error {
	if err == nil {
		return ErrorNone
	}
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return ErrorUndefined
}

// ParseError returns the result code with the given name, e.g. "no more".
func ParseError(name string) (Error, bool) {
	for e, n := range errorNames {
		if n == name {
			return e, true
		}
	}
	return ErrorNone, false
}
