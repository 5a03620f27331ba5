package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidURL          = errors.New("invalid url")
	ErrInvalidCode         = errors.New("invalid code")
	ErrCodeExists          = errors.New("code already exists")
	ErrAllocationExhausted = errors.New("code allocation exhausted")

	// ErrReservedCode is an ErrInvalidCode naming a route of the service.
	ErrReservedCode = fmt.Errorf("%w: reserved", ErrInvalidCode)

	// ErrStoreUnavailable marks infrastructure failures a caller may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
