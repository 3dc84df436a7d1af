package export

import "errors"

// ErrExport wraps any failure while writing run artifacts.
var ErrExport = errors.New("artifact export failed")
