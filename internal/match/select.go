// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"errors"

	"github.com/pdiddy/cite-lookup/pkg/types"
)

// ErrNoResults is returned by Select when there is nothing to choose from.
var ErrNoResults = errors.New("no results found")

// Select returns the first candidate whose normalized title equals the
// normalized query, tagged exact. Without an exact match it returns the
// first candidate, tagged best_available. Candidates are assumed to be in
// backend rank order; first-in-order wins at both levels.
func Select(candidates []types.Candidate, title string) (types.Candidate, types.MatchType, error) {
	if len(candidates) == 0 {
		return types.Candidate{}, "", ErrNoResults
	}

	want := Normalize(title)
	for _, c := range candidates {
		if Normalize(c.Title) == want {
			return c, types.MatchExact, nil
		}
	}
	return candidates[0], types.MatchBestAvailable, nil
}
