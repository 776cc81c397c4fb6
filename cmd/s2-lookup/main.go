// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the s2-lookup CLI. It resolves paper
// titles with Semantic Scholar's search-and-match endpoint and prints one
// JSON result per title on stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-lookup/internal/cli"
	"github.com/pdiddy/cite-lookup/internal/lookup"
	"github.com/pdiddy/cite-lookup/internal/s2"
	"github.com/pdiddy/cite-lookup/internal/secrets"
	"github.com/pdiddy/cite-lookup/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	flagKey     = "key"
	flagBaseURL = "base-url"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var loaded secrets.Secrets

	cmd := &cobra.Command{
		Use:   "s2-lookup [titles...]",
		Short: "Resolve paper titles to BibTeX through Semantic Scholar",
		Long: `s2-lookup asks Semantic Scholar's /paper/search/match endpoint for the
best match of each title and reports its BibTeX, citation count, and match
score. Results are printed to stdout as a JSON array, one element per title
in input order. A failed title is reported inside its own element and never
stops the batch.

The API key is taken from --key, then S2_LOOKUP_KEY or S2_API_KEY (a .env
file is honoured), then the config file, then .secrets/semantic-scholar-api-key.
Without a key requests are unauthenticated and more strictly rate limited.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString(cli.FlagConfig)
			if err := v.BindEnv(flagKey, "S2_LOOKUP_KEY", "S2_API_KEY"); err != nil {
				return err
			}
			if err := cli.LoadConfig(v, cmd, cli.ConfigOptions{
				Name:       "s2-lookup",
				EnvPrefix:  "S2_LOOKUP",
				ConfigFile: cfgFile,
				DotEnv:     []string{".env"},
			}, cmd.ErrOrStderr()); err != nil {
				return err
			}

			s, err := secrets.Load(secrets.DefaultDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			loaded = s
			if len(s) > 0 && v.GetBool(cli.FlagVerbose) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", s.Names())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, v, loaded, args)
		},
	}

	cli.AddCommonFlags(cmd, "s2-lookup")
	cmd.Flags().String(flagKey, "", "Semantic Scholar API key (sent as x-api-key)")
	cmd.Flags().String(flagBaseURL, s2.DefaultBaseURL, "Semantic Scholar Graph API base URL")

	return cmd
}

func runLookup(cmd *cobra.Command, v *viper.Viper, loaded secrets.Secrets, args []string) error {
	titles, err := cli.CollectTitles(v.GetString(cli.FlagTitlesFile), args)
	if err != nil {
		return err
	}

	cfg := types.GraphConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(cli.FlagTimeout),
			UserAgent: v.GetString(cli.FlagUserAgent),
		},
		APIKey:       loaded.Or(secrets.SemanticScholarKey, v.GetString(flagKey)),
		BaseURL:      v.GetString(flagBaseURL),
		RequestDelay: v.GetDuration(cli.FlagDelay),
	}

	progress := cli.Progress(v.GetBool(cli.FlagVerbose))
	resolver := &lookup.Graph{
		Client: s2.NewClient(cli.HTTPClient(cfg.Timeout), cfg),
		Log:    progress,
	}

	results := lookup.Run(cmd.Context(), titles, resolver, lookup.NewPacer(cfg.RequestDelay), progress)
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
