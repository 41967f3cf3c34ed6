package services

import "errors"

var (
	// ErrInvalidCredentials is returned by login for an unknown user or a wrong
	// password alike, so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated covers every reason a bearer token is rejected.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrCreatingToken   = errors.New("failed to create access token")
)
