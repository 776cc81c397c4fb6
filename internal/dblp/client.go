// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp searches the DBLP publication index and fetches BibTeX
// records from it. Every request goes through the primary server first and
// falls over to the mirror only when the primary answers HTTP 500.
package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/cite-lookup/internal/httputil"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// DefaultMirrors lists the DBLP servers in fallback order.
var DefaultMirrors = []string{
	"https://dblp.org",
	"https://dblp.uni-trier.de",
}

const (
	searchPath     = "/search/publ/api"
	defaultMaxHits = 200
)

// Client talks to DBLP. The zero value is not usable; HTTP must be set.
type Client struct {
	HTTP httputil.Doer

	// Mirrors overrides DefaultMirrors when non-empty.
	Mirrors []string

	UserAgent string
}

// NewClient builds a Client from cfg using hc for transport.
func NewClient(hc httputil.Doer, cfg types.CatalogConfig) *Client {
	return &Client{
		HTTP:      hc,
		Mirrors:   cfg.Mirrors,
		UserAgent: cfg.UserAgent,
	}
}

// Search runs a publication search for query and returns up to maxHits
// candidates in DBLP's rank order.
func (c *Client) Search(ctx context.Context, query string, maxHits int) ([]types.Candidate, error) {
	if maxHits <= 0 {
		maxHits = defaultMaxHits
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"h":      {strconv.Itoa(maxHits)},
		"f":      {"0"},
	}

	resp, err := httputil.GetWithFallback(ctx, c.HTTP, c.mirrors(), searchPath, params, c.header())
	if err != nil {
		return nil, fmt.Errorf("DBLP search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.NewStatusError(resp)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing DBLP search response: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(sr.Result.Hits.Hit))
	for _, h := range sr.Result.Hits.Hit {
		candidates = append(candidates, toCandidate(h))
	}
	return candidates, nil
}

// FetchBibTeX retrieves the BibTeX record for key in the given format and
// returns it with surrounding whitespace removed.
func (c *Client) FetchBibTeX(ctx context.Context, key string, format types.BibFormat) (string, error) {
	var params url.Values
	if p, ok := format.Param(); ok {
		params = url.Values{"param": {p}}
	}

	resp, err := httputil.GetWithFallback(ctx, c.HTTP, c.mirrors(), "/rec/"+key+".bib", params, c.header())
	if err != nil {
		return "", fmt.Errorf("DBLP BibTeX request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httputil.NewStatusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading DBLP BibTeX response: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *Client) mirrors() []string {
	if len(c.Mirrors) > 0 {
		return c.Mirrors
	}
	return DefaultMirrors
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	return h
}

// toCandidate flattens a search hit. An unparseable score is left at 0;
// order, not score, drives selection.
func toCandidate(h hit) types.Candidate {
	c := types.Candidate{
		Key:   h.Info.Key,
		Title: h.Info.Title,
		Year:  h.Info.Year,
		Venue: strings.Join(h.Info.Venue, ", "),
		Type:  h.Info.Type,
		DOI:   h.Info.DOI,
	}
	if s, err := strconv.ParseFloat(h.Score, 64); err == nil {
		c.Score = s
	}
	c.Authors = make([]string, 0, len(h.Info.Authors.Author))
	for _, a := range h.Info.Authors.Author {
		c.Authors = append(c.Authors, a.Text)
	}
	return c
}
