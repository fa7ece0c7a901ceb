package errors

import (
	stderr "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// ProtocolError is a violation of the daemon protocol. It never becomes a command result:
// the RPC fails with the carried status code.
type ProtocolError struct {
	Code codes.Code
	Msg  string
}

// Error is an implementation of the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error (%s): %s", e.Code, e.Msg)
}

// GRPCStatus lets status.FromError and status.Code see through the error.
func (e *ProtocolError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Msg)
}

// Protocolf returns a ProtocolError with a formatted message.
func Protocolf(code codes.Code, format string, args ...any) error {
	return &ProtocolError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// AsProtocol returns the ProtocolError in err's chain, if any.
func AsProtocol(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if !stderr.As(err, &pe) {
		return nil, false
	}
	return pe, true
}

var (
	// ErrShuttingDown is returned for every command admitted after Kill started.
	ErrShuttingDown = &ProtocolError{Code: codes.Unavailable, Msg: "daemon is shutting down"}
	// ErrNoClientContext reports a stream whose first frame was not the client context.
	ErrNoClientContext = &ProtocolError{Code: codes.FailedPrecondition, Msg: "no client context message was received"}
	// ErrDuplicateClientContext reports a second client context on one stream.
	ErrDuplicateClientContext = &ProtocolError{Code: codes.FailedPrecondition, Msg: "client context sent more than once"}
)
