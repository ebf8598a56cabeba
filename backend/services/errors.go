package services

import "errors"

// Business-rule failures raised by the service layer. Controllers translate
// these to HTTP status codes; nothing below the services returns an
// unwrapped store error to a handler.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid email/username or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrEmptyAnswer        = errors.New("answer indices cannot be empty")
	ErrUnsupportedType    = errors.New("unsupported response type")
	ErrMissingUserID      = errors.New("user id is required")
	ErrNotFound           = errors.New("resource not found")
)
