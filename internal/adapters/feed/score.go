package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/topspin/internal/domain/model"
)

// Winner sanity floors: a completed best-of-three win needs two sets
// and at least twelve games.
const (
	minWinnerSets  = 2
	minWinnerGames = 12
)

// tiebreaks carry the losing point count in parentheses, e.g. 7-6(4);
// the margin function only cares about games, so they are stripped.
var tiebreakRe = regexp.MustCompile(`\([^)]*\)`)

// unfinished tokens appearing in raw score strings for walkovers,
// retirements, and defaults.
var unfinishedTokens = []string{"W/O", "RET", "DEF", "UNF", "ABN"}

// ParseScore converts a raw score string like "6-4 3-6 7-6(5)" into a
// structured Score from the winner's perspective. Unfinished or
// malformed scores return ErrMalformedScore; callers treat those as a
// neutral margin rather than failing the run.
func ParseScore(raw string) (model.Score, error) {
	cleaned := strings.TrimSpace(tiebreakRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return model.Score{}, fmt.Errorf("%w: empty", ErrMalformedScore)
	}

	upper := strings.ToUpper(cleaned)
	for _, tok := range unfinishedTokens {
		if strings.Contains(upper, tok) {
			return model.Score{}, fmt.Errorf("%w: unfinished %q", ErrMalformedScore, raw)
		}
	}

	var s model.Score
	for _, set := range strings.Fields(cleaned) {
		games := strings.Split(set, "-")
		if len(games) != 2 {
			return model.Score{}, fmt.Errorf("%w: set %q in %q", ErrMalformedScore, set, raw)
		}
		wg, errW := strconv.Atoi(games[0])
		lg, errL := strconv.Atoi(games[1])
		if errW != nil || errL != nil || wg < 0 || lg < 0 {
			return model.Score{}, fmt.Errorf("%w: set %q in %q", ErrMalformedScore, set, raw)
		}

		s.WinnerGames += wg
		s.LoserGames += lg
		if wg > lg {
			s.WinnerSets++
		} else if lg > wg {
			s.LoserSets++
		}
	}

	if s.WinnerSets < minWinnerSets || s.WinnerGames < minWinnerGames {
		return model.Score{}, fmt.Errorf("%w: implausible winner line in %q", ErrMalformedScore, raw)
	}

	s.Valid = true
	return s, nil
}
