package backend

import "errors"

var (
	// ErrNetwork means the backend could not be reached at all.
	ErrNetwork = errors.New("backend network error")

	// ErrUnauthorized means the backend rejected the bearer token.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrRejected means the backend answered but refused the operation.
	ErrRejected = errors.New("backend rejected request")

	// ErrNotFound means the requested entity does not exist upstream.
	ErrNotFound = errors.New("backend entity not found")
)
