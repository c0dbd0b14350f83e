package core

import "errors"

// Sentinel errors returned by the catalog, item registry and scheduler.
// All of them are recoverable at the call site; callers match with errors.Is.
var (
	ErrUnknownSource   = errors.New("unknown alert source")
	ErrDuplicateSource = errors.New("alert source already exists")
	ErrUnknownField    = errors.New("unknown field")
	ErrDuplicateField  = errors.New("field already declared")
	ErrFieldInUse      = errors.New("field referenced by a threshold")
	ErrUnknownItem     = errors.New("unknown item")
	ErrDuplicateItem   = errors.New("item already exists")
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrAlreadyRunning  = errors.New("automation already running")
)
