package split

import "errors"

// Sentinel kinds for split errors. These allow errors.Is/As from callers.
var (
	ErrInvalidRange    = errors.New("invalid year range")
	ErrInvalidTestSize = errors.New("invalid test size")
)
