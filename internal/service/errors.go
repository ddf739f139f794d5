package service

import "errors"

// Sentinel errors the controllers translate into HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation failed")
	ErrTerminalState = errors.New("conversation already ended")
)
