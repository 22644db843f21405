package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is returned for a nil error.
	SuccessABCICode uint32 = 0

	// Errors without a registered code end up here. Their message may
	// carry store keys or other internals so it is never shown outside
	// of debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo maps err onto the code and log of an ABCI response.
//
// A registered error anywhere in the causer chain provides the code. Without
// one the code is 1 and the log is a generic message. A recovered panic keeps
// its code, but its log is hidden the same way. Debug mode always prints the
// full error including stack traces.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, code == ErrPanic.code:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the causer chain until it finds an error that knows its
// code.
func abciCode(err error) uint32 {
	for !isNilErr(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
