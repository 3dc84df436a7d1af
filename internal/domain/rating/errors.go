package rating

import (
	"errors"
	"fmt"

	"github.com/okian/topspin/internal/domain/model"
)

// Sentinel kinds for rating errors. These allow errors.Is/As from callers.
var (
	// ErrUnknownTier means a match referenced a tier missing from the
	// configured weight table. Fatal: the run must not silently guess
	// a confidence weight.
	ErrUnknownTier = errors.New("tier not in weight table")
)

func unknownTier(tier model.Tier) error {
	return fmt.Errorf("%w: %q", ErrUnknownTier, string(tier))
}
