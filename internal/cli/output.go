// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"encoding/json"
	"io"

	"github.com/pdiddy/cite-lookup/pkg/types"
)

// WriteJSON writes results to w as one 2-space indented JSON array followed
// by a newline. Non-ASCII text and HTML characters are written as-is.
func WriteJSON(w io.Writer, results []types.Result) error {
	if results == nil {
		results = []types.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
