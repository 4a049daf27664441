package myweblog

import "fmt"

// RequestError reports that a request never produced a usable HTTP
// response: dial failures, timeouts, cancelled contexts.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: execute request: %v", e.Op, e.Err)
}

// Unwrap exposes the transport cause for errors.Is/As.
func (e *RequestError) Unwrap() error { return e.Err }

// AuthError reports rejected credentials, a rejected token exchange, or an
// operation attempted without a token.
type AuthError struct {
	Op     string
	Reason string
}

func (e *AuthError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("authentication failed: %s", e.Reason)
	}
	return fmt.Sprintf("%s: authentication failed: %s", e.Op, e.Reason)
}

// ProtocolError reports a response that does not look like the API at the
// expected version: unexpected HTTP status, malformed JSON, or a qType or
// APIVersion echo that does not match the request.
type ProtocolError struct {
	Op     string
	Status int // non-zero when an HTTP status code triggered the failure
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: api returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// RemoteError carries the service's own errorMessage for a rejected
// mutating call, verbatim and uninterpreted.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
