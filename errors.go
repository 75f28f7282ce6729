package cryptoboard

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrMalformedJSON     = errors.New("malformed json")
	ErrMissingPriceTable = errors.New("missing price table")
)

type (
	// TransportError wraps any network failure: dial, TLS, timeout, reset.
	TransportError struct {
		Cause error
	}

	BadStatusError struct {
		Code int
	}

	// DecodeError carries ErrMalformedJSON or ErrMissingPriceTable as Reason.
	DecodeError struct {
		Reason error
		Asset  string
		Cause  error
	}
)

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("bad status: %d %s", e.Code, http.StatusText(e.Code))
}

func (e *DecodeError) Error() string {
	msg := "decode error: " + e.Reason.Error()

	if e.Asset != "" {
		msg += " " + e.Asset
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Reason}
	}

	return []error{e.Reason, e.Cause}
}
