package service

import "errors"

var (
	// ErrNoLocations indicates the location listing came back empty, so no
	// dataset can be built.
	ErrNoLocations = errors.New("restarea: no location records fetched")

	// ErrNotFound indicates a lookup by slug matched nothing.
	ErrNotFound = errors.New("restarea: not found")

	// ErrValidation indicates an invalid query argument.
	ErrValidation = errors.New("restarea: validation failed")

	// ErrUnavailable indicates no dataset has been loaded yet.
	ErrUnavailable = errors.New("restarea: dataset not loaded")
)
