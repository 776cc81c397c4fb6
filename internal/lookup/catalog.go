// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/cite-lookup/internal/match"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// CatalogClient is the DBLP surface the catalog pipeline needs.
// *dblp.Client implements it.
type CatalogClient interface {
	Search(ctx context.Context, query string, maxHits int) ([]types.Candidate, error)
	FetchBibTeX(ctx context.Context, key string, format types.BibFormat) (string, error)
}

// Catalog resolves titles against DBLP: search, client-side match, then a
// second request for the matched record's BibTeX.
type Catalog struct {
	Client  CatalogClient
	MaxHits int
	Format  types.BibFormat

	// Pacer is waited on between the search and the BibTeX fetch. Share
	// it with Run so every request to DBLP is spaced.
	Pacer *Pacer

	// Log receives progress lines; nil discards them.
	Log io.Writer
}

// Resolve implements Resolver.
func (c *Catalog) Resolve(ctx context.Context, title string) types.Result {
	w := orDiscard(c.Log)

	fmt.Fprintf(w, "searching: %s\n", title)
	candidates, err := c.Client.Search(ctx, title, c.MaxHits)
	if err != nil {
		return types.Failed(title, fmt.Sprintf("Search failed: %v", err))
	}

	best, matchType, err := match.Select(candidates, title)
	if err != nil {
		return types.Failed(title, "No results found")
	}
	if best.Key == "" {
		return types.Failed(title, "Result has no DBLP key")
	}
	fmt.Fprintf(w, "  matched %s (%s, %d candidates)\n", best.Key, matchType, len(candidates))

	if err := c.Pacer.Wait(ctx); err != nil {
		return types.Failed(title, "Cancelled: "+err.Error())
	}

	bib, err := c.Client.FetchBibTeX(ctx, best.Key, c.Format)
	if err != nil {
		return types.Failed(title, fmt.Sprintf("BibTeX fetch failed: %v", err))
	}

	return types.CatalogSuccess(title, types.CatalogMatch{
		Title:     best.Title,
		Year:      best.Year,
		Authors:   best.Authors,
		Venue:     best.Venue,
		BibTeX:    bib,
		DBLPKey:   best.Key,
		MatchType: matchType,
	})
}
