// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli holds the plumbing shared by the dblp-lookup and s2-lookup
// executables: configuration, common flags, title input, and JSON output.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "cite-lookup/0.1"

	configDir = "cite-lookup"
)

// Common flag names.
const (
	FlagConfig     = "config"
	FlagTitlesFile = "titles-file"
	FlagTimeout    = "timeout"
	FlagDelay      = "delay"
	FlagUserAgent  = "user-agent"
	FlagVerbose    = "verbose"
)

// AddCommonFlags registers the flags both executables share.
func AddCommonFlags(cmd *cobra.Command, name string) {
	f := cmd.Flags()
	f.String(FlagConfig, "", fmt.Sprintf("config file (default: ./%s.yaml or ~/.config/%s/%s.yaml)", name, configDir, name))
	f.String(FlagTitlesFile, "", "YAML file listing titles to look up (before any positional titles)")
	f.Duration(FlagTimeout, DefaultTimeout, "HTTP request timeout")
	f.Duration(FlagDelay, time.Second, "minimum spacing between consecutive requests")
	f.String(FlagUserAgent, DefaultUserAgent, "User-Agent header for HTTP requests")
	f.BoolP(FlagVerbose, "v", false, "write progress to stderr")
}

// ConfigOptions describes where an executable reads its settings from.
type ConfigOptions struct {
	// Name is the executable name; it is also the config file base name.
	Name string

	// EnvPrefix prefixes environment overrides, e.g. DBLP_LOOKUP.
	EnvPrefix string

	// ConfigFile is an explicit config path; empty searches the defaults.
	ConfigFile string

	// DotEnv lists .env files to load into the environment. Missing files
	// are ignored and variables already set are not overwritten.
	DotEnv []string
}

// LoadConfig binds cmd's flags into v and layers the sources in viper's
// order: explicitly set flags, then environment, then config file, then
// flag defaults. The config file is optional unless named explicitly; a
// discovered file that cannot be read is reported to w and skipped.
func LoadConfig(v *viper.Viper, cmd *cobra.Command, opts ConfigOptions, w io.Writer) error {
	for _, f := range opts.DotEnv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	explicit := opts.ConfigFile != ""
	cfgFile := opts.ConfigFile
	if !explicit {
		cfgFile = findConfig(opts.Name)
	}

	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		if explicit {
			return fmt.Errorf("reading config: %w", err)
		}
		fmt.Fprintf(w, "Warning: ignoring config file %s: %v\n", cfgFile, err)
		return nil
	}
	fmt.Fprintln(w, "Using config file:", v.ConfigFileUsed())
	return nil
}

// configExts are the file extensions tried when searching for a config.
var configExts = []string{".yaml", ".yml"}

// findConfig returns the first <name>.yaml or <name>.yml found in the
// working directory or ~/.config/cite-lookup, or "" when there is none.
// Extensionless files, such as a built <name> binary, are never considered.
func findConfig(name string) string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", configDir))
	}
	for _, dir := range dirs {
		for _, ext := range configExts {
			path := filepath.Join(dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// Progress returns the writer for progress lines: stderr when verbose,
// otherwise a discarding writer. stdout is reserved for the JSON result.
func Progress(verbose bool) io.Writer {
	if verbose {
		return os.Stderr
	}
	return io.Discard
}

// HTTPClient returns a client with the given per-request timeout.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
