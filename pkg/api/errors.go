package api

import (
	"fmt"
	"strconv"
)

// The error taxonomy mirrors the phases of a Send call. Errors raised
// before the network boundary (ValidationError, SigningError) leave no
// partial effect; TransportError and ProtocolError abort the whole call
// with no BatchResult; ApplicationError and CorrelationError are carried
// inside the BatchResult so callers can inspect partial success.
//
// All of these are matched with errors.As. None of them ever carries
// the API secret.

// ValidationError reports bad input detected before any network call:
// an empty or oversized batch, a missing required field, or a duplicate
// ref within one batch.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "corezoid: invalid request: " + e.Reason
}

// SigningError reports that a signature could not be computed, either
// because the payload is not representable as JSON or because the
// credentials are missing.
type SigningError struct {
	Reason string
	Err    error
}

func (e *SigningError) Error() string {
	if e.Err != nil {
		return "corezoid: signing failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "corezoid: signing failed: " + e.Reason
}

func (e *SigningError) Unwrap() error { return e.Err }

// TransportError reports a network failure, timeout, or non-2xx status.
// StatusCode is zero when the request never produced a response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := "corezoid: transport failed for " + e.URL
	if e.StatusCode != 0 {
		msg += ": unexpected status " + strconv.Itoa(e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response body whose shape could not be
// interpreted: not a JSON object, missing ops array, or an entry
// without a proc field.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "corezoid: malformed response: " + e.Reason
}

// CorrelationError reports that the response entries could not all be
// aligned with the submitted operations. It is carried on the
// BatchResult rather than aborting the call; the matched pairs are
// still available.
type CorrelationError struct {
	Sent     int
	Received int
	Reason   string
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("corezoid: correlation failed: %s (sent %d operations, received %d entries)",
		e.Reason, e.Sent, e.Received)
}

// ApplicationError is a per-operation failure reported by the engine
// itself (proc == "error"). It never aborts the batch.
type ApplicationError struct {
	Ref         string
	ObjID       string
	Code        string
	Description string
}

func (e *ApplicationError) Error() string {
	msg := "corezoid: operation failed"
	if id := e.identifier(); id != "" {
		msg += " (" + id + ")"
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}
	return msg
}

func (e *ApplicationError) identifier() string {
	if e.Ref != "" {
		return "ref " + e.Ref
	}
	if e.ObjID != "" {
		return "obj_id " + e.ObjID
	}
	return ""
}
