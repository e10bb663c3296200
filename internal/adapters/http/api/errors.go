package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrNotFound = errors.New("route not found")
	ErrRender   = errors.New("render dashboard failed")
)
