// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citation lookup pipelines.
// Candidate is the transient search hit, Result is the per-title output unit
// emitted by both the DBLP and the Semantic Scholar executables.
package types

import (
	"bytes"
	"encoding/json"
)

// Candidate is one search hit for a title query, prior to selection.
// Candidates live only for the duration of a single lookup.
type Candidate struct {
	// Key is the backend identifier (DBLP key, e.g. "conf/nips/VaswaniSPUJGKP17").
	Key string `json:"key"`

	// Title is the raw title text as returned by the backend.
	Title string `json:"title"`

	// Score is the backend rank score; 0 when the backend did not supply one.
	Score float64 `json:"score"`

	// Authors lists author names in backend order.
	Authors []string `json:"authors"`

	Year  string `json:"year"`
	Venue string `json:"venue"`

	// Type is the backend's publication type tag (e.g. "Journal Articles").
	Type string `json:"type"`
	DOI  string `json:"doi,omitempty"`
}

// MatchType records how the selector chose a candidate among ranked hits.
type MatchType string

const (
	// MatchExact means the normalized candidate title equals the normalized query.
	MatchExact MatchType = "exact"
	// MatchBestAvailable means no exact match existed and the top-ranked hit was taken.
	MatchBestAvailable MatchType = "best_available"
)

// Status distinguishes success from error results.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the terminal output unit for one query. Exactly one of
// Catalog, Graph, or Error is set. The payload fields are flattened into
// the JSON object, so the field set alone tells a success from an error.
type Result struct {
	Query  string
	Status Status

	Catalog *CatalogMatch
	Graph   *GraphMatch

	Error string
}

// MarshalJSON writes query and status first, followed by the payload fields
// of whichever variant is set. HTML characters are left unescaped because
// BibTeX routinely carries "&".
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Catalog != nil:
		return marshalRaw(struct {
			Query  string `json:"query"`
			Status Status `json:"status"`
			*CatalogMatch
		}{r.Query, r.Status, r.Catalog})
	case r.Graph != nil:
		return marshalRaw(struct {
			Query  string `json:"query"`
			Status Status `json:"status"`
			*GraphMatch
		}{r.Query, r.Status, r.Graph})
	default:
		return marshalRaw(struct {
			Query  string `json:"query"`
			Status Status `json:"status"`
			Error  string `json:"error"`
		}{r.Query, r.Status, r.Error})
	}
}

// CatalogMatch is the success payload of a DBLP lookup.
type CatalogMatch struct {
	Title     string    `json:"title"`
	Year      string    `json:"year"`
	Authors   []string  `json:"authors"`
	Venue     string    `json:"venue"`
	BibTeX    string    `json:"bibtex"`
	DBLPKey   string    `json:"dblp_key"`
	MatchType MatchType `json:"match_type"`
}

// GraphMatch is the success payload of a Semantic Scholar lookup. Year,
// CitationCount and MatchScore are null in JSON when the backend omits them.
// MatchScore is reported as-is; no threshold is applied.
type GraphMatch struct {
	Title         string   `json:"title"`
	Year          *int     `json:"year"`
	Authors       []string `json:"authors"`
	CitationCount *int     `json:"citation_count"`
	BibTeX        string   `json:"bibtex"`
	PaperID       string   `json:"paper_id"`
	MatchScore    *float64 `json:"match_score"`
}

func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Failed builds an error result for query.
func Failed(query, msg string) Result {
	return Result{Query: query, Status: StatusError, Error: msg}
}

// CatalogSuccess builds a success result carrying a DBLP payload.
func CatalogSuccess(query string, m CatalogMatch) Result {
	if m.Authors == nil {
		m.Authors = []string{}
	}
	return Result{Query: query, Status: StatusSuccess, Catalog: &m}
}

// GraphSuccess builds a success result carrying a Semantic Scholar payload.
func GraphSuccess(query string, m GraphMatch) Result {
	if m.Authors == nil {
		m.Authors = []string{}
	}
	return Result{Query: query, Status: StatusSuccess, Graph: &m}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
