package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptySessionID  = errors.New("session id is empty")
	ErrInvalidState    = errors.New("invalid game state")
)
