// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"encoding/json"
)

// oneOrMany decodes a JSON value that DBLP sends as a bare object when
// there is exactly one element and as an array otherwise. Both shapes, and
// null, decode to a slice.
type oneOrMany[T any] []T

func (m *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*m = nil
		return nil
	case data[0] == '[':
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*m = many
		return nil
	default:
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*m = oneOrMany[T]{one}
		return nil
	}
}

// DBLP search API JSON structures.
type searchResponse struct {
	Result struct {
		Hits struct {
			Total string         `json:"@total"`
			Hit   oneOrMany[hit] `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type hit struct {
	Score string  `json:"@score"`
	ID    string  `json:"@id"`
	Info  hitInfo `json:"info"`
}

type hitInfo struct {
	Authors struct {
		Author oneOrMany[hitAuthor] `json:"author"`
	} `json:"authors"`
	Title string            `json:"title"`
	Venue oneOrMany[string] `json:"venue"`
	Year  string            `json:"year"`
	Type  string            `json:"type"`
	Key   string            `json:"key"`
	DOI   string            `json:"doi"`
}

type hitAuthor struct {
	PID  string `json:"@pid"`
	Text string `json:"text"`
}
