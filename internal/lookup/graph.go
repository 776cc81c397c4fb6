// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/pdiddy/cite-lookup/internal/httputil"
	"github.com/pdiddy/cite-lookup/internal/s2"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// GraphClient is the Semantic Scholar surface the graph pipeline needs.
// *s2.Client implements it.
type GraphClient interface {
	Match(ctx context.Context, title string) (*s2.Paper, error)
}

// Graph resolves titles with Semantic Scholar's search-and-match endpoint.
// The backend picks the match, so there is no selection step, and the
// BibTeX comes embedded in the same response.
type Graph struct {
	Client GraphClient

	// Log receives progress lines; nil discards them.
	Log io.Writer
}

// noMatch reports both a 404 and a 200 with an empty data array.
const noMatch = "No match found (404)"

// snippetLen bounds how much of an unexpected error body is echoed.
const snippetLen = 200

// Resolve implements Resolver. The match score is reported unfiltered.
func (g *Graph) Resolve(ctx context.Context, title string) types.Result {
	fmt.Fprintf(orDiscard(g.Log), "matching: %s\n", title)

	paper, err := g.Client.Match(ctx, title)
	if err != nil {
		return types.Failed(title, graphErrorMessage(err))
	}

	return types.GraphSuccess(title, types.GraphMatch{
		Title:         paper.Title,
		Year:          paper.Year,
		Authors:       paper.AuthorNames(),
		CitationCount: paper.CitationCount,
		BibTeX:        paper.BibTeX(),
		PaperID:       paper.PaperID,
		MatchScore:    paper.MatchScore,
	})
}

// graphErrorMessage classifies a Match failure into the user-facing message.
func graphErrorMessage(err error) string {
	var se *httputil.StatusError
	var ue *url.Error
	switch {
	case errors.Is(err, s2.ErrNoMatch):
		return noMatch
	case errors.As(err, &se):
		switch {
		case se.StatusCode == http.StatusNotFound:
			return noMatch
		case se.StatusCode == http.StatusTooManyRequests:
			return "Rate limited (429)"
		case se.StatusCode >= http.StatusInternalServerError:
			return fmt.Sprintf("Server error (%d)", se.StatusCode)
		default:
			return fmt.Sprintf("HTTP %d: %s", se.StatusCode, truncate(se.Body, snippetLen))
		}
	case errors.As(err, &ue):
		return fmt.Sprintf("Connection error: %v", err)
	default:
		return fmt.Sprintf("Invalid response: %v", err)
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
