// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup turns titles into citation results. A Resolver runs the
// per-title pipeline for one backend and never fails: every search, match,
// or fetch problem becomes an error Result. Run drives a batch of titles
// through a Resolver in order.
package lookup

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/cite-lookup/pkg/types"
)

// Resolver looks up a single title.
type Resolver interface {
	Resolve(ctx context.Context, title string) types.Result
}

// Run resolves titles strictly in input order, one at a time, waiting on
// pacer before each title so consecutive titles are spaced apart. It does
// not deduplicate or stop on failures; the returned slice has one Result
// per title in input order. Once ctx is done the remaining titles are
// reported as cancelled. Progress lines and a summary go to w.
func Run(ctx context.Context, titles []string, r Resolver, pacer *Pacer, w io.Writer) []types.Result {
	w = orDiscard(w)

	results := make([]types.Result, 0, len(titles))
	var failed int
	for i, title := range titles {
		res := runOne(ctx, title, r, pacer)
		if !res.OK() {
			failed++
			fmt.Fprintf(w, "[%d/%d] failed:  %s (%s)\n", i+1, len(titles), title, res.Error)
		} else {
			fmt.Fprintf(w, "[%d/%d] resolved: %s\n", i+1, len(titles), title)
		}
		results = append(results, res)
	}

	fmt.Fprintf(w, "\nBatch summary: %d resolved, %d failed (total: %d)\n",
		len(titles)-failed, failed, len(titles))
	return results
}

func runOne(ctx context.Context, title string, r Resolver, pacer *Pacer) types.Result {
	if err := ctx.Err(); err != nil {
		return types.Failed(title, "Cancelled: "+err.Error())
	}
	if err := pacer.Wait(ctx); err != nil {
		return types.Failed(title, "Cancelled: "+err.Error())
	}
	return r.Resolve(ctx, title)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
