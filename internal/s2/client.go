// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package s2 resolves a title through the Semantic Scholar Graph API
// search-and-match endpoint. The backend does the matching itself and
// answers with at most one paper, whose BibTeX is embedded in the response.
package s2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/cite-lookup/internal/httputil"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// DefaultBaseURL is the Semantic Scholar Graph API root.
const DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

const matchFields = "paperId,title,year,authors,citationCount,externalIds,citationStyles"

// ErrNoMatch is returned when a 200 response carries no paper.
var ErrNoMatch = errors.New("no match found")

// Client queries the Semantic Scholar Graph API.
type Client struct {
	HTTP httputil.Doer

	// BaseURL overrides DefaultBaseURL when non-empty.
	BaseURL string

	// APIKey is sent as x-api-key when set. Unauthenticated requests are
	// allowed but share a stricter rate limit.
	APIKey string

	UserAgent string
}

// NewClient builds a Client from cfg using hc for transport.
func NewClient(hc httputil.Doer, cfg types.GraphConfig) *Client {
	return &Client{
		HTTP:      hc,
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}
}

// Match asks the backend for the single paper best matching title.
// A non-200 status is returned as *httputil.StatusError with the body kept.
func (c *Client) Match(ctx context.Context, title string) (*Paper, error) {
	params := url.Values{
		"query":  {SanitizeQuery(title)},
		"fields": {matchFields},
	}
	reqURL := c.baseURL() + "/paper/search/match?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.NewStatusError(resp)
	}

	var mr matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	if len(mr.Data) == 0 {
		return nil, ErrNoMatch
	}
	return &mr.Data[0], nil
}

// SanitizeQuery replaces hyphens with spaces; the backend's fuzzy title
// match does not treat a hyphen as a word joiner.
func SanitizeQuery(title string) string {
	return strings.ReplaceAll(title, "-", " ")
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

// Paper is the matched record as returned by /paper/search/match.
type Paper struct {
	PaperID        string          `json:"paperId"`
	Title          string          `json:"title"`
	Year           *int            `json:"year"`
	Authors        []Author        `json:"authors"`
	CitationCount  *int            `json:"citationCount"`
	ExternalIDs    ExternalIDs     `json:"externalIds"`
	CitationStyles *CitationStyles `json:"citationStyles"`
	MatchScore     *float64        `json:"matchScore"`
}

// Author is one entry of a paper's author list.
type Author struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

// ExternalIDs holds the identifiers Semantic Scholar links to a paper.
type ExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	DBLP     string `json:"DBLP"`
	CorpusID int    `json:"CorpusId"`
}

// CitationStyles carries preformatted citations.
type CitationStyles struct {
	BibTeX string `json:"bibtex"`
}

// BibTeX returns the embedded BibTeX record, or "" when the backend
// omitted it.
func (p *Paper) BibTeX() string {
	if p.CitationStyles == nil {
		return ""
	}
	return p.CitationStyles.BibTeX
}

// AuthorNames returns author names in backend order, never nil.
func (p *Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	return names
}

type matchResponse struct {
	Data []Paper `json:"data"`
}
