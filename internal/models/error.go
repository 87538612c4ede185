package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLocked             = errors.New("account is locked")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrExternalService    = errors.New("external service failure")
	ErrInternalServer     = errors.New("internal server error")
)
