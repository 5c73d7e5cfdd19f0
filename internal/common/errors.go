// Package common defines sentinel errors shared by the store, service and
// transport layers of flatauth. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Request-level errors, mapped 1:1 to HTTP 4xx responses.
	ErrMissingField     = errors.New("email and password are required")
	ErrEmailConflict    = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("password incorrect")

	// Storage errors.
	ErrStorageRead  = errors.New("storage read error")
	ErrStorageWrite = errors.New("storage write error")
	ErrCorruptStore = errors.New("store content is not a valid user collection")

	// Configuration errors.
	ErrUnknownStorage = errors.New("unknown storage kind")
)
