package app

import "errors"

// ErrNoFeed is returned when Run is called without a match source.
var ErrNoFeed = errors.New("no match feed configured")
