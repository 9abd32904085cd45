// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/outrigdev/boolsearch/pkg/base"
	"github.com/outrigdev/boolsearch/pkg/config"
	"github.com/outrigdev/boolsearch/pkg/filesearch"
	"github.com/outrigdev/boolsearch/pkg/gensearch"
	"github.com/outrigdev/boolsearch/pkg/logutil"
	"github.com/outrigdev/boolsearch/pkg/resultfmt"
	"github.com/outrigdev/boolsearch/pkg/searchparser"
	"github.com/outrigdev/boolsearch/pkg/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	ExitCodeError        = 1
	ExitCodeInvalidQuery = 2
)

// exitError carries a process exit code up to main
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// loadConfig resolves the config for a run rooted at dir, honoring --config
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return config.LoadConfigFile(configPath)
	}
	cfg, path, err := config.LoadConfigFrom(dir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logrus.WithField("path", path).Debug("loaded config")
	}
	return cfg, nil
}

// applyConfigLogLevel re-initializes logging from the config file unless
// --loglevel or the environment already chose a level
func applyConfigLogLevel(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("loglevel") || os.Getenv(base.LogLevelEnvName) != "" || cfg.LogLevel == "" {
		return nil
	}
	if err := logutil.Init(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("invalid loglevel in config: %w", err)
	}
	return nil
}

// applySearchFlags overlays explicitly set flags on cfg
func applySearchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("case-sensitive") {
		cfg.CaseSensitive, _ = flags.GetBool("case-sensitive")
	}
	if flags.Changed("scope") {
		cfg.Scope, _ = flags.GetString("scope")
	}
	if flags.Changed("include") {
		cfg.Include, _ = flags.GetString("include")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetString("exclude")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("max-per-file") {
		cfg.MaxMatchesPerFile, _ = flags.GetInt("max-per-file")
	}
	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return &exitError{code: ExitCodeError, err: errors.New("please enter a search query")}
	}
	root := "."
	if len(args) > 1 {
		root = args[1]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, absRoot)
	if err != nil {
		return err
	}
	if err := applyConfigLogLevel(cmd, cfg); err != nil {
		return err
	}
	if err := applySearchFlags(cmd, cfg); err != nil {
		return err
	}
	scope, err := cfg.GetScope()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	res, err := filesearch.SearchDir(ctx, absRoot, query, filesearch.DirOptions{
		Options: filesearch.Options{
			CaseSensitive: cfg.CaseSensitive,
			Scope:         scope,
			Workers:       cfg.Workers,
		},
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		if errors.Is(err, searchparser.ErrMalformedQuery) {
			return &exitError{code: ExitCodeInvalidQuery, err: fmt.Errorf("invalid query: %w", err)}
		}
		if errors.Is(err, filesearch.ErrNoRoot) {
			return fmt.Errorf("no folder to search: %w", err)
		}
		return err
	}
	return resultfmt.Write(cmd.OutOrStdout(), cfg.Format, query, res.Results, resultfmt.FormatOpts{
		MaxMatchesPerFile: cfg.MaxMatchesPerFile,
		BaseDir:           absRoot,
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	parser := searchparser.NewParser(args[0])
	node, err := parser.Parse()
	if err != nil {
		return &exitError{code: ExitCodeInvalidQuery, err: fmt.Errorf("invalid query: %w", err)}
	}
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	scopeStr, _ := cmd.Flags().GetString("scope")
	scope, err := gensearch.ParseScope(scopeStr)
	if err != nil {
		return err
	}
	ev, err := gensearch.MakeEvaluator(node, caseSensitive, scope)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if showTokens, _ := cmd.Flags().GetBool("tokens"); showTokens {
		fmt.Fprintf(out, "tokens: %s\n\n", searchparser.TokensToString(parser.Tokens()))
	}
	fmt.Fprintln(out, searchparser.PrettyPrintMultiline(node))
	if unparsed := parser.Unparsed(); len(unparsed) > 0 {
		fmt.Fprintf(out, "ignored: %s\n", searchparser.TokensToString(unparsed))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "scope: %s\n", ev.Scope())
	fmt.Fprintf(out, "searcher: %s\n", gensearch.PrettyPrint(ev.Searcher()))
	fmt.Fprintf(out, "positive terms: %s\n", strings.Join(gensearch.PositiveTerms(node), ", "))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, absRoot)
	if err != nil {
		return err
	}
	if err := applyConfigLogLevel(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr, _ = cmd.Flags().GetString("listen")
	}
	isDev, _ := cmd.Flags().GetBool("dev")
	listener, err := web.MakeTCPListener("boolsearch", cfg.ListenAddr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "serving %s on http://%s\n", absRoot, listener.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return web.RunWebServer(ctx, listener, &web.SearchServer{Root: absRoot, Config: cfg, Dev: isDev})
}

func makeRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boolsearch",
		Short: "boolsearch searches files with AND/OR/NOT queries",
		Long: `boolsearch searches plain-text files with boolean queries such as
"error AND timeout NOT test". Operators are case-insensitive; NOT binds tighter
than AND, which binds tighter than OR.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("loglevel")
			if level == "" {
				level = os.Getenv(base.LogLevelEnvName)
			}
			return logutil.Init(level, cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().String("loglevel", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: nearest "+base.ConfigFileName+")")

	searchCmd := &cobra.Command{
		Use:   "search <query> [root]",
		Short: "Search the files under root (default: current directory)",
		Long: `Search the files under root for lines matching a boolean query.

With --scope file (the default) a file matches when the whole file satisfies the
query; every line containing a positive term is then reported. With --scope line
each line must satisfy the query on its own.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSearch,
	}
	searchCmd.Flags().BoolP("case-sensitive", "c", false, "Match case exactly")
	searchCmd.Flags().StringP("scope", "s", string(gensearch.FileScope), "Search scope: file or line")
	searchCmd.Flags().String("include", config.DefaultInclude, "Glob of files to search")
	searchCmd.Flags().String("exclude", config.DefaultExclude, "Glob of files to skip")
	searchCmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, full, json, html or vimgrep")
	searchCmd.Flags().IntP("workers", "j", 0, "Number of files searched in parallel (default: number of CPUs)")
	searchCmd.Flags().Int("max-per-file", config.DefaultMaxMatchesPerFile, "Matches shown per file in text output")

	parseCmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Print the expression tree for a query",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().BoolP("case-sensitive", "c", false, "Build a case-sensitive searcher")
	parseCmd.Flags().StringP("scope", "s", string(gensearch.FileScope), "Search scope: file or line")
	parseCmd.Flags().Bool("tokens", false, "Also print the tokens of the query")

	serveCmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve the search API over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().String("listen", config.DefaultListenAddr, "Address to listen on")
	serveCmd.Flags().Bool("dev", false, "Allow cross-origin requests")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of boolsearch",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), base.VersionString())
		},
	}

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

// exitCode maps a command error to the process exit code
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitCodeError
}

func main() {
	rootCmd := makeRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
