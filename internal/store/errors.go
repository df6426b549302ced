package store

import "errors"

var (
	ErrUnavailable     = errors.New("store unavailable")
	ErrSessionNotFound = errors.New("session not found")
)
