package service

import "errors"

// Business errors the API layer maps onto HTTP responses
var (
	// ErrInvalidCredentials covers both unknown identifier and wrong password,
	// so a caller cannot tell which part failed
	ErrInvalidCredentials = errors.New("incorrect email/username or password")
	// ErrInactiveUser means the credentials matched but the account is disabled;
	// deliberately distinguishable from ErrInvalidCredentials
	ErrInactiveUser = errors.New("inactive user")
	// ErrEmailTaken means the email is already registered
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken means the username is already occupied
	ErrUsernameTaken = errors.New("username already taken")
)
