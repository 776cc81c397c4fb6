package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by both backends.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cite-lookup/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BibFormat selects one of DBLP's BibTeX variants.
type BibFormat string

const (
	BibStandard  BibFormat = "standard"
	BibCondensed BibFormat = "condensed"
	BibCrossref  BibFormat = "crossref"
)

// ParseBibFormat validates s. The empty string means standard.
func ParseBibFormat(s string) (BibFormat, error) {
	switch f := BibFormat(s); f {
	case "":
		return BibStandard, nil
	case BibStandard, BibCondensed, BibCrossref:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported bib format %q: use standard, condensed, or crossref", s)
	}
}

// Param returns the value of DBLP's "param" query parameter for the format.
// Standard sends no parameter; condensed is 1 and crossref is 2.
func (f BibFormat) Param() (string, bool) {
	switch f {
	case BibCondensed:
		return "1", true
	case BibCrossref:
		return "2", true
	default:
		return "", false
	}
}

// CatalogConfig holds settings for the DBLP lookup.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxHits is the number of search hits requested per title (default 200).
	MaxHits int `json:"max_hits" yaml:"max_hits"`

	// BibFormat selects the BibTeX variant fetched for the matched record.
	BibFormat BibFormat `json:"bib_format" yaml:"bib_format"`

	// Mirrors lists DBLP base URLs in fallback order. Empty means the
	// built-in dblp.org, dblp.uni-trier.de pair.
	Mirrors []string `json:"mirrors,omitempty" yaml:"mirrors,omitempty"`

	// RequestDelay spaces consecutive requests: search to fetch, and title
	// to title (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// GraphConfig holds settings for the Semantic Scholar lookup.
type GraphConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional Semantic Scholar API key sent as x-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the Graph API base (default
	// https://api.semanticscholar.org/graph/v1).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// RequestDelay is the delay between consecutive titles (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}
