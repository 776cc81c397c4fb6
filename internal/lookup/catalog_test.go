// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-lookup/internal/dblp"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// --- mock catalog client ---

type mockCatalog struct {
	candidates []types.Candidate
	searchErr  error
	bibtex     string
	fetchErr   error

	searchAt, fetchAt time.Time
	fetchedKey        string
	fetchedFormat     types.BibFormat
	gotMaxHits        int
}

func (m *mockCatalog) Search(_ context.Context, _ string, maxHits int) ([]types.Candidate, error) {
	m.searchAt = time.Now()
	m.gotMaxHits = maxHits
	return m.candidates, m.searchErr
}

func (m *mockCatalog) FetchBibTeX(_ context.Context, key string, format types.BibFormat) (string, error) {
	m.fetchAt = time.Now()
	m.fetchedKey = key
	m.fetchedFormat = format
	return m.bibtex, m.fetchErr
}

func attentionCandidate() types.Candidate {
	return types.Candidate{
		Key:     "conf/nips/VaswaniSPUJGKP17",
		Title:   "Attention is All you Need.",
		Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
		Year:    "2017",
		Venue:   "NIPS",
	}
}

func TestCatalogResolveExact(t *testing.T) {
	m := &mockCatalog{
		candidates: []types.Candidate{{Key: "other/key", Title: "Attention Is Not Explanation"}, attentionCandidate()},
		bibtex:     "@inproceedings{DBLP:conf/nips/VaswaniSPUJGKP17}",
	}
	c := &Catalog{Client: m, MaxHits: 200, Format: types.BibCondensed}

	res := c.Resolve(context.Background(), "Attention Is All You Need")
	require.True(t, res.OK(), "error: %s", res.Error)
	require.NotNil(t, res.Catalog)

	assert.Equal(t, "Attention Is All You Need", res.Query)
	assert.Equal(t, "Attention is All you Need.", res.Catalog.Title)
	assert.Equal(t, "2017", res.Catalog.Year)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, res.Catalog.Authors)
	assert.Equal(t, "NIPS", res.Catalog.Venue)
	assert.Equal(t, "conf/nips/VaswaniSPUJGKP17", res.Catalog.DBLPKey)
	assert.Equal(t, types.MatchExact, res.Catalog.MatchType)
	assert.Equal(t, "@inproceedings{DBLP:conf/nips/VaswaniSPUJGKP17}", res.Catalog.BibTeX)

	assert.Equal(t, "conf/nips/VaswaniSPUJGKP17", m.fetchedKey)
	assert.Equal(t, types.BibCondensed, m.fetchedFormat)
	assert.Equal(t, 200, m.gotMaxHits)
}

func TestCatalogResolveBestAvailable(t *testing.T) {
	m := &mockCatalog{
		candidates: []types.Candidate{{Key: "first/key", Title: "Something Else"}, attentionCandidate()},
		bibtex:     "@misc{x}",
	}
	res := (&Catalog{Client: m}).Resolve(context.Background(), "Unrelated Query")
	require.True(t, res.OK())
	assert.Equal(t, "first/key", res.Catalog.DBLPKey)
	assert.Equal(t, types.MatchBestAvailable, res.Catalog.MatchType)
}

func TestCatalogResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		mock    *mockCatalog
		wantMsg string
	}{
		{
			"search failure",
			&mockCatalog{searchErr: errors.New("dial tcp: connection refused")},
			"Search failed: dial tcp: connection refused",
		},
		{
			"no candidates",
			&mockCatalog{},
			"No results found",
		},
		{
			"candidate without key",
			&mockCatalog{candidates: []types.Candidate{{Title: "Keyless"}}},
			"Result has no DBLP key",
		},
		{
			"fetch failure",
			&mockCatalog{candidates: []types.Candidate{attentionCandidate()}, fetchErr: errors.New("HTTP 404 from x")},
			"BibTeX fetch failed: HTTP 404 from x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&Catalog{Client: tt.mock}).Resolve(context.Background(), "Attention Is All You Need")
			assert.False(t, res.OK())
			assert.Equal(t, types.StatusError, res.Status)
			assert.Equal(t, tt.wantMsg, res.Error)
			assert.Nil(t, res.Catalog)
			assert.Nil(t, res.Graph)
		})
	}
}

func TestCatalogSearchFailureHasNoSuccessFields(t *testing.T) {
	m := &mockCatalog{searchErr: errors.New("timeout")}
	res := (&Catalog{Client: m}).Resolve(context.Background(), "T")

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, map[string]any{
		"query":  "T",
		"status": "error",
		"error":  "Search failed: timeout",
	}, obj)
}

func TestCatalogWaitsBetweenSearchAndFetch(t *testing.T) {
	const interval = 60 * time.Millisecond
	m := &mockCatalog{candidates: []types.Candidate{attentionCandidate()}, bibtex: "@misc{x}"}
	pacer := NewPacer(interval)

	// The first token goes to the search, as Run would take it.
	require.NoError(t, pacer.Wait(context.Background()))
	res := (&Catalog{Client: m, Pacer: pacer}).Resolve(context.Background(), "Attention Is All You Need")
	require.True(t, res.OK())

	assert.GreaterOrEqual(t, m.fetchAt.Sub(m.searchAt), interval-10*time.Millisecond)
}

func TestCatalogCancelledDuringPacing(t *testing.T) {
	m := &mockCatalog{candidates: []types.Candidate{attentionCandidate()}, bibtex: "@misc{x}"}
	pacer := NewPacer(time.Hour)
	require.NoError(t, pacer.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := (&Catalog{Client: m, Pacer: pacer}).Resolve(ctx, "Attention Is All You Need")
	assert.False(t, res.OK())
	assert.True(t, strings.HasPrefix(res.Error, "Cancelled: "), res.Error)
	assert.True(t, m.fetchAt.IsZero(), "fetch must not run")
}

func TestCatalogLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	m := &mockCatalog{candidates: []types.Candidate{attentionCandidate()}, bibtex: "@misc{x}"}
	(&Catalog{Client: m, Log: &buf}).Resolve(context.Background(), "Attention Is All You Need")

	assert.Contains(t, buf.String(), "searching: Attention Is All You Need")
	assert.Contains(t, buf.String(), "matched conf/nips/VaswaniSPUJGKP17 (exact")
}

// --- end to end against an httptest DBLP ---

func dblpServer(t *testing.T, searchBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/publ/api", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchBody)
	})
	mux.HandleFunc("/rec/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "\n@inproceedings{DBLP:%s,\n  title = {Attention is All you Need}\n}\n", r.URL.Path)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestCatalogEndToEndExactMatch(t *testing.T) {
	ts := dblpServer(t, `{"result":{"hits":{"@total":"1","hit":{"@score":"7","info":{
		"authors":{"author":{"text":"Ashish Vaswani"}},
		"title":"Attention is All you Need.","venue":"NIPS","year":"2017",
		"key":"conf/nips/VaswaniSPUJGKP17"}}}}}`)

	client := &dblp.Client{HTTP: ts.Client(), Mirrors: []string{ts.URL}}
	resolver := &Catalog{Client: client, MaxHits: 200, Format: types.BibStandard}

	results := Run(context.Background(), []string{"Attention Is All You Need"}, resolver, nil, nil)
	require.Len(t, results, 1)

	data, err := json.Marshal(results[0])
	require.NoError(t, err)
	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))

	assert.Equal(t, "success", obj["status"])
	assert.Equal(t, "exact", obj["match_type"])
	assert.Equal(t, "conf/nips/VaswaniSPUJGKP17", obj["dblp_key"])
	assert.Equal(t, []any{"Ashish Vaswani"}, obj["authors"])
	assert.Equal(t, "@inproceedings{DBLP:/rec/conf/nips/VaswaniSPUJGKP17.bib,\n  title = {Attention is All you Need}\n}", obj["bibtex"])
}

func TestCatalogEndToEndNoResults(t *testing.T) {
	ts := dblpServer(t, `{"result":{"hits":{"@total":"0","@sent":"0"}}}`)

	client := &dblp.Client{HTTP: ts.Client(), Mirrors: []string{ts.URL}}
	results := Run(context.Background(), []string{"xyzzy-nonexistent-title-zz"}, &Catalog{Client: client}, nil, nil)
	require.Len(t, results, 1)

	data, err := json.Marshal(results[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"query": "xyzzy-nonexistent-title-zz", "status": "error", "error": "No results found"}`, string(data))
}
