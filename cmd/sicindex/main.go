// Package main provides the sicindex binary entry point.
// sicindex builds the UK SIC 2007 classification catalog from the
// published data files and answers code and description queries
// against it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/sicindex/config"
	"github.com/c360studio/sicindex/lookup"
	"github.com/c360studio/sicindex/meta"
	"github.com/c360studio/sicindex/sic"
	"github.com/c360studio/sicindex/source"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sicindex"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sicindex",
		Short: "UK SIC 2007 classification catalog",
		Long: `sicindex builds the UK SIC 2007 classification catalog from the
published structure list, activity index and metadata files.

It provides:
- Code, description and division lookups over the catalog
- Curated rephrased descriptions for coding results
- The deduplicated leaf-text corpus for downstream matching
- Catalog consistency checking and live reload on data changes`,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory holding the published files")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(
		lookupCmd(opts),
		showCmd(opts),
		divisionsCmd(opts),
		rephraseCmd(opts),
		corpusCmd(opts),
		checkCmd(opts),
		watchCmd(opts),
		versionCmd(),
	)

	return cmd
}

// setup loads the layered configuration, applies flag overrides and
// installs the logger.
func setup(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	loader := config.NewLoader(nil)

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = loader.LoadPath(opts.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Flags override file and environment settings
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, setupLogging(cfg), nil
}

func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler).With(slog.String("run_id", uuid.New().String()))
	slog.SetDefault(logger)
	return logger
}

func loadCatalog(cfg *config.Config, logger *slog.Logger) (*source.Catalog, error) {
	paths := cfg.DataPaths()
	logger.Debug("Loading catalog",
		"structure", paths.Structure,
		"activity_index", paths.ActivityIndex,
		"metadata", paths.Metadata)

	catalog, err := source.Load(paths)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	logger.Debug("Catalog loaded",
		"nodes", catalog.Hierarchy.Len(),
		"meta_records", catalog.Meta.Count())
	return catalog, nil
}

func lookupCmd(opts *rootOptions) *cobra.Command {
	var (
		similar bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <description>",
		Short: "Look up the code for an activity description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("similar") && cfg.Lookup.Similarity {
				similar = true
			}

			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}
			if catalog.Descriptions == nil {
				return fmt.Errorf("no description corpus configured (data.descriptions)")
			}

			match := catalog.Descriptions.Lookup(strings.Join(args, " "), similar)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), match)
			}
			printMatch(cmd.OutOrStdout(), match)
			return nil
		},
	}

	cmd.Flags().BoolVar(&similar, "similar", false, "Scan for similar descriptions when there is no exact match")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printMatch(w io.Writer, match *lookup.Match) {
	if !match.Found() {
		fmt.Fprintf(w, "no exact match for %q\n", match.Description)
	} else {
		fmt.Fprintf(w, "code: %s\n", match.Code)
		if match.CodeMeta != nil {
			fmt.Fprintf(w, "title: %s\n", match.CodeMeta.Title)
		}
		if match.CodeDivision != "" {
			fmt.Fprintf(w, "division: %s", match.CodeDivision)
			if match.CodeDivisionMeta != nil {
				fmt.Fprintf(w, " (%s)", match.CodeDivisionMeta.Title)
			}
			fmt.Fprintln(w)
		}
	}

	if p := match.Potential; p != nil && p.DescriptionsCount > 0 {
		fmt.Fprintf(w, "potential descriptions (%d):\n", p.DescriptionsCount)
		for _, desc := range p.Descriptions {
			fmt.Fprintf(w, "  - %s\n", desc)
		}
		fmt.Fprintf(w, "potential codes: %s\n", strings.Join(p.Codes, ", "))
		for _, div := range p.Divisions {
			if div.Meta != nil {
				fmt.Fprintf(w, "  division %s: %s\n", div.Code, div.Meta.Title)
			} else {
				fmt.Fprintf(w, "  division %s\n", div.Code)
			}
		}
	}
}

// nodeView is the JSON shape of a catalog node. Parent and children
// are rendered as formatted codes to keep the output acyclic.
type nodeView struct {
	Code        string       `json:"code"`
	Alpha       string       `json:"alpha"`
	Level       string       `json:"level"`
	Section     string       `json:"section"`
	Description string       `json:"description"`
	Parent      string       `json:"parent,omitempty"`
	Children    []string     `json:"children,omitempty"`
	Meta        *meta.Record `json:"meta,omitempty"`
	Activities  []string     `json:"activities,omitempty"`
}

func newNodeView(node *sic.Node) nodeView {
	view := nodeView{
		Code:        node.Code.String(),
		Alpha:       node.Code.Alpha(),
		Level:       node.Code.LevelName(),
		Section:     node.Code.Section(),
		Description: node.Description,
		Meta:        node.Meta,
		Activities:  node.Activities,
	}
	if node.Parent != nil {
		view.Parent = node.Parent.Code.String()
	}
	for _, child := range node.Children {
		view.Children = append(view.Children, child.Code.String())
	}
	return view
}

func showCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show one catalog entry with its lineage, metadata and activities",
		Long: `Show resolves a code in any of its spellings: formatted ("01.11"),
padded alpha ("A0111x"), unpadded alpha ("A0111"), bare digits
("0111") or, for a leaf class, the five-digit zero form ("01110").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			node, ok := catalog.Hierarchy.Get(args[0])
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no entry for %q\n", args[0])
				return nil
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), newNodeView(node))
			}
			fmt.Fprint(cmd.OutOrStdout(), node.Details())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entry as JSON")
	return cmd
}

func divisionsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "divisions <code>...",
		Short: "List the distinct divisions behind a set of candidate codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			l := catalog.Descriptions
			if l == nil {
				l = lookup.NewDescriptionLookup(nil, catalog.Meta)
			}

			candidates := make([]lookup.Candidate, 0, len(args))
			for _, code := range args {
				candidates = append(candidates, lookup.Candidate{Code: code})
			}

			infos := l.UniqueCodeDivisions(candidates)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), infos)
			}
			for _, info := range infos {
				if info.CodeDivisionMeta != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", info.CodeDivision, info.CodeDivisionMeta.Title)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), info.CodeDivision)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the divisions as JSON")
	return cmd
}

func rephraseCmd(opts *rootOptions) *cobra.Command {
	var (
		applyPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "rephrase <code>...",
		Short: "Resolve curated rephrased descriptions for codes",
		Long: `Rephrase resolves each code to its reviewed plain-language
description. Codes without a curated rewrite report the not-found
marker.

With --apply, a JSON array of coding results is read instead and the
reviewed descriptions are substituted in: the primary description is
replaced (or nulled when its code is unknown) while candidates keep
their original text when no rewrite exists.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}
			if catalog.Rephrase == nil {
				return fmt.Errorf("no rephrased descriptions configured (data.rephrased)")
			}

			if applyPath != "" {
				return runRephraseApply(cmd.OutOrStdout(), catalog.Rephrase, applyPath)
			}
			if len(args) == 0 {
				return fmt.Errorf("requires a code argument or --apply")
			}

			results := make([]lookup.Rephrase, 0, len(args))
			for _, code := range args {
				results = append(results, catalog.Rephrase.Lookup(code))
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				if r.Found() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Code, r.Reviewed)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Code, r.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&applyPath, "apply", "", "JSON file of coding results to substitute into (\"-\" for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")
	return cmd
}

func runRephraseApply(w io.Writer, l *lookup.RephraseLookup, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	var results []lookup.CodedResult
	if err := json.Unmarshal(data, &results); err != nil {
		return fmt.Errorf("parse results: %w", err)
	}

	for i := range results {
		l.Apply(&results[i])
	}

	return printJSON(w, results)
}

func corpusCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Write the deduplicated leaf-text corpus as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create corpus file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := catalog.Hierarchy.WriteLeafTextCSV(w); err != nil {
				return err
			}

			logger.Info("Corpus written",
				"rows", len(catalog.Hierarchy.LeafText()),
				"out", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func checkCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build the catalog from the configured data and report its shape",
		Long: `Check loads every configured data file and runs the full catalog
build with its consistency checks: code formats, parent links, the
metadata count match and activity index resolution. A defect in any
file fails the command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}

			levels := make(map[string]int)
			leaves := 0
			activities := 0
			withMeta := 0
			for _, node := range catalog.Hierarchy.Nodes() {
				levels[node.Code.LevelName()]++
				if node.IsLeaf() {
					leaves++
				}
				activities += len(node.Activities)
				if node.Meta != nil {
					withMeta++
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "catalog OK")
			fmt.Fprintf(w, "  nodes:       %d\n", catalog.Hierarchy.Len())
			fmt.Fprintf(w, "  sections:    %d\n", levels[sic.LevelSection])
			fmt.Fprintf(w, "  divisions:   %d\n", levels[sic.LevelDivision])
			fmt.Fprintf(w, "  groups:      %d\n", levels[sic.LevelGroup])
			fmt.Fprintf(w, "  classes:     %d\n", levels[sic.LevelClass])
			fmt.Fprintf(w, "  subclasses:  %d\n", levels[sic.LevelSubclass])
			fmt.Fprintf(w, "  leaves:      %d\n", leaves)
			fmt.Fprintf(w, "  with meta:   %d\n", withMeta)
			fmt.Fprintf(w, "  activities:  %d\n", activities)
			fmt.Fprintf(w, "  corpus rows: %d\n", len(catalog.Hierarchy.LeafText()))
			if catalog.Descriptions != nil {
				fmt.Fprintf(w, "  descriptions: %d\n", catalog.Descriptions.Len())
			}
			if catalog.Rephrase != nil {
				fmt.Fprintf(w, "  rephrased:   %d\n", catalog.Rephrase.Len())
			}
			return nil
		},
	}

	return cmd
}

func watchCmd(opts *rootOptions) *cobra.Command {
	var debounce string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the data directory and rebuild the catalog on changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}

			printBanner()

			catalog, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("Catalog loaded", "nodes", catalog.Hierarchy.Len())

			watchCfg := cfg.Watch
			watchCfg.Enabled = true
			if debounce != "" {
				watchCfg.DebounceDelay = debounce
			}

			watcher, err := source.NewWatcher(watchCfg, cfg.Data.Dir, logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			// Setup signal handling
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer watcher.Stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("Received shutdown signal")
					return nil
				case event, ok := <-watcher.Events():
					if !ok {
						return nil
					}
					logger.Info("Data changed, rebuilding catalog",
						"path", event.Path,
						"op", string(event.Operation))

					rebuilt, err := loadCatalog(cfg, logger)
					if err != nil {
						logger.Error("Catalog rebuild failed, keeping previous catalog", "error", err)
						continue
					}
					catalog = rebuilt
					logger.Info("Catalog rebuilt", "nodes", catalog.Hierarchy.Len())
				}
			}
		},
	}

	cmd.Flags().StringVar(&debounce, "debounce", "", "Debounce delay before rebuilding (e.g. 500ms)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║             sicindex v" + Version + "                  ║")
	fmt.Println("║      UK SIC 2007 Classification Catalog       ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
