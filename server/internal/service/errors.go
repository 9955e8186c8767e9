package service

import "errors"

var (
	// ErrEmptyPayload marks a request with no body or no events.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidPayload marks a body that does not decode into the wire schema.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrStorage marks a database failure while persisting a payload.
	ErrStorage = errors.New("storage unavailable")
)
