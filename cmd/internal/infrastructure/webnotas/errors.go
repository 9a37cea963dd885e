package webnotas

import (
	"errors"
	"fmt"
)

const (
	// MsgUnexpected replaces an error body that is missing or is not JSON.
	MsgUnexpected = "unexpected error"
	// MsgRequestFailed is used when the envelope parses but carries no message.
	MsgRequestFailed = "request failed"
	// MsgInvalidResponse is used when a successful response cannot be decoded.
	MsgInvalidResponse = "invalid response from server"
)

// RequestError is returned for every failed upstream call, whether the
// transport broke or the server answered with a non-success status. Status is
// zero for transport failures.
type RequestError struct {
	Message string
	Status  int
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// errorEnvelope is the body of non-2xx upstream responses.
type errorEnvelope struct {
	Error string `json:"error"`
}

func newTransportError(method, path string, err error) *RequestError {
	return &RequestError{
		Message: err.Error(),
		Err:     fmt.Errorf("%s %s: %w", method, path, err),
	}
}

// AsRequestError extracts a *RequestError from err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
