// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dblp-lookup CLI. It resolves paper
// titles against DBLP and prints one JSON result per title on stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-lookup/internal/cli"
	"github.com/pdiddy/cite-lookup/internal/dblp"
	"github.com/pdiddy/cite-lookup/internal/lookup"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	flagMaxHits   = "max-hits"
	flagBibFormat = "bib-format"
	flagMirror    = "mirror"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dblp-lookup [titles...]",
		Short: "Resolve paper titles to BibTeX through DBLP",
		Long: `dblp-lookup searches DBLP for each title, picks the hit whose normalized
title matches exactly (or the top-ranked hit otherwise), and fetches its
BibTeX record. Results are printed to stdout as a JSON array, one element per
title in input order. A failed title is reported inside its own element and
never stops the batch.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString(cli.FlagConfig)
			return cli.LoadConfig(v, cmd, cli.ConfigOptions{
				Name:       "dblp-lookup",
				EnvPrefix:  "DBLP_LOOKUP",
				ConfigFile: cfgFile,
				DotEnv:     []string{".env"},
			}, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, v, args)
		},
	}

	cli.AddCommonFlags(cmd, "dblp-lookup")
	cmd.Flags().Int(flagMaxHits, 200, "maximum search hits requested per title")
	cmd.Flags().String(flagBibFormat, string(types.BibStandard), "BibTeX variant: standard, condensed, or crossref")
	cmd.Flags().StringSlice(flagMirror, nil, "DBLP base URL, repeatable, in fallback order (default: dblp.org, dblp.uni-trier.de)")

	return cmd
}

func runLookup(cmd *cobra.Command, v *viper.Viper, args []string) error {
	titles, err := cli.CollectTitles(v.GetString(cli.FlagTitlesFile), args)
	if err != nil {
		return err
	}

	maxHits := v.GetInt(flagMaxHits)
	if maxHits <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", flagMaxHits, maxHits)
	}
	format, err := types.ParseBibFormat(v.GetString(flagBibFormat))
	if err != nil {
		return err
	}

	cfg := types.CatalogConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(cli.FlagTimeout),
			UserAgent: v.GetString(cli.FlagUserAgent),
		},
		MaxHits:      maxHits,
		BibFormat:    format,
		Mirrors:      v.GetStringSlice(flagMirror),
		RequestDelay: v.GetDuration(cli.FlagDelay),
	}

	progress := cli.Progress(v.GetBool(cli.FlagVerbose))
	pacer := lookup.NewPacer(cfg.RequestDelay)
	resolver := &lookup.Catalog{
		Client:  dblp.NewClient(cli.HTTPClient(cfg.Timeout), cfg),
		MaxHits: cfg.MaxHits,
		Format:  cfg.BibFormat,
		Pacer:   pacer,
		Log:     progress,
	}

	results := lookup.Run(cmd.Context(), titles, resolver, pacer, progress)
	return cli.WriteJSON(cmd.OutOrStdout(), results)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
