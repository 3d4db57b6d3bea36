package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/geldfluss/sankey/internal/amount"
	"github.com/geldfluss/sankey/internal/config"
	"github.com/geldfluss/sankey/internal/domain"
	"github.com/geldfluss/sankey/internal/engine"
	"github.com/geldfluss/sankey/internal/finanzguru"
	"github.com/geldfluss/sankey/internal/frame"
	"github.com/geldfluss/sankey/internal/log"
	"github.com/geldfluss/sankey/internal/output"
	"github.com/geldfluss/sankey/internal/scanner"
	"github.com/geldfluss/sankey/internal/server"
	"github.com/geldfluss/sankey/internal/state"
	"github.com/geldfluss/sankey/internal/ui"
	"github.com/geldfluss/sankey/internal/validate"
)

const (
	version = "0.1.0"
)

var (
	// Global flags
	versionFlag = flag.Bool("version", false, "Show version")

	// Core CLI flags
	configFile = flag.String("config", "config.yaml", "YAML configuration file")
	inputFile  = flag.String("input", "", "Finanzguru CSV export (overrides config input_file)")
	year       = flag.Int("year", 0, "Analysis year (falls back to last-used value)")
	month      = flag.Int("month", 0, "Analysis month 1-12, or 13 for the whole year (falls back to last-used value)")
	depth      = flag.Int("depth", 0, "Issue hierarchy depth to expand (falls back to last-used value)")
	outputFile = flag.String("output", "", "Output JSON file (default: config output_file, then stdout)")
	stateFile  = flag.String("state", "", "SQLite file remembering the last-used parameters")
	verbose    = flag.Bool("verbose", false, "Show detailed logs")

	// Server flags
	serve = flag.Bool("serve", false, "Serve the graph over HTTP instead of writing a file")
	addr  = flag.String("addr", ":8080", "HTTP listen address (with -serve)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `sankeygen - Money flow graph generator for Finanzguru CSV exports

Usage:
  sankeygen [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, `
Examples:
  # Generate the graph for March 2024, two category levels deep
  sankeygen -config config.yaml -year 2024 -month 3 -depth 2 -output flow.json

  # Whole-year view, remembering the parameters for the next run
  sankeygen -year 2024 -month 13 -depth 1 -state ~/.sankeygen/state.db

  # Serve the graph over HTTP for a browser-based renderer
  sankeygen -serve -addr :8080 -state ~/.sankeygen/state.db

`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("sankeygen version %s\n", version)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg == nil {
		// A default config was just written; the user has to fill it in first.
		return nil
	}

	if *inputFile != "" {
		cfg.InputFile = *inputFile
	}
	if *outputFile != "" {
		cfg.OutputFile = *outputFile
	}

	var store *state.Store
	if *stateFile != "" {
		store, err = state.Open(*stateFile)
		if err != nil {
			return fmt.Errorf("failed to open state file %s: %w", *stateFile, err)
		}
		defer store.Close()
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: logLevel})

	if *serve {
		srv := server.New(cfg, store, logger)
		logger.Info("serving", "addr", *addr, "input", cfg.InputFile)
		return http.ListenAndServe(*addr, srv.Handler())
	}

	params, err := resolveParams(store)
	if err != nil {
		return err
	}

	if !*verbose {
		ui.Header("Generating Money Flow Graph")
		ui.Step(1, 4, "Reading CSV export")
	}

	// A directory as input means "use the newest export in it". Finanzguru
	// downloads are timestamped, so the newest file is the freshest data.
	if info, statErr := os.Stat(cfg.InputFile); statErr == nil && info.IsDir() {
		latest, err := scanner.New(cfg.InputFile).FindLatest()
		if err != nil {
			return err
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "Using newest export in %s: %s\n", cfg.InputFile, latest.Path)
		}
		cfg.InputFile = latest.Path
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Reading CSV export: %s\n", cfg.InputFile)
	}

	table, err := finanzguru.ReadFile(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.InputFile, err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Read %d transactions (%d columns)\n", table.Len(), len(table.Columns()))
	} else {
		ui.Success(fmt.Sprintf("Read %d transactions", table.Len()))
		ui.Step(2, 4, "Aggregating income and issues")
	}

	root, err := engine.New(cfg).Parse(table, params.Year, params.Month, params.IssueDepth)
	if err != nil {
		var fmtErr *amount.FormatError
		if errors.As(err, &fmtErr) {
			return fmt.Errorf("unparseable amount %q in %s: %w\n\nCheck that the export uses the German Finanzguru format (1.234,56)", fmtErr.Raw, cfg.InputFile, err)
		}
		return err
	}

	if params.Month == frame.WholeYear {
		logger.Debug("aggregated", "year", params.Year, "income", root.IncomeAmount(), "issues", root.IssuesAmount())
	} else {
		logger.Debug("aggregated", "year", params.Year, "month", params.Month, "income", root.IncomeAmount(), "issues", root.IssuesAmount())
	}

	if store != nil {
		if err := store.Save(params); err != nil {
			return fmt.Errorf("failed to save last-used parameters: %w", err)
		}
	}

	if !*verbose {
		ui.Step(3, 4, "Validating graph")
	}

	graph := domain.BuildGraph(root, domain.DiagramTitle(params.Year, params.Month))

	result := validate.ValidateGraph(graph)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if *verbose {
				fmt.Fprintf(os.Stderr, "  - %s %s [%s]: %s\n", e.Entity, e.ID, e.Field, e.Message)
			} else {
				ui.Error(fmt.Sprintf("%s %s [%s]: %s", e.Entity, e.ID, e.Field, e.Message))
			}
		}
		return fmt.Errorf("graph validation failed with %d errors", len(result.Errors))
	}
	for _, w := range result.Warnings {
		if *verbose {
			fmt.Fprintf(os.Stderr, "  warning: %s %s [%s]: %s\n", w.Entity, w.ID, w.Field, w.Message)
		} else {
			ui.Warning(w.Message)
		}
	}

	if !*verbose {
		ui.Step(4, 4, "Writing graph")
	}

	if err := output.WriteGraphToFile(graph, cfg.OutputFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.OutputFile != "" {
		if *verbose {
			fmt.Fprintf(os.Stderr, "Graph written to %s\n", cfg.OutputFile)
		} else {
			ui.Success(fmt.Sprintf("Graph written to %s", cfg.OutputFile))
		}
	}

	if !*verbose {
		fmt.Fprintf(os.Stderr, "\n")
		ui.Summary("Income", fmt.Sprintf("%.2f", root.IncomeAmount()))
		ui.Summary("Issues", fmt.Sprintf("%.2f", root.IssuesAmount()))
		ui.Summary("Nodes", len(graph.Nodes))
		ui.Summary("Links", len(graph.Links))
	}

	return nil
}

// loadConfig loads the configuration, bootstrapping a default file on the
// first run. Returns (nil, nil) when a fresh default was written.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(*configFile); os.IsNotExist(err) {
		created, werr := config.WriteDefault(*configFile)
		if werr != nil {
			return nil, fmt.Errorf("failed to write default config: %w", werr)
		}
		if created {
			ui.Info(fmt.Sprintf("Wrote default configuration to %s", *configFile))
			ui.Info("Edit it to match your Finanzguru export, then run again")
			return nil, nil
		}
	}
	return config.LoadFromFile(*configFile)
}

// resolveParams merges the -year/-month/-depth flags with the stored
// last-used values. Flags win; unset flags fall back to the store.
func resolveParams(store *state.Store) (state.LastUsed, error) {
	params := state.LastUsed{Month: frame.WholeYear, IssueDepth: 1}
	if store != nil {
		stored, ok, err := store.Load()
		if err != nil {
			return state.LastUsed{}, fmt.Errorf("failed to load last-used parameters: %w", err)
		}
		if ok {
			params = stored
		}
	}

	if *year != 0 {
		params.Year = *year
	}
	if *month != 0 {
		params.Month = *month
	}
	if *depth != 0 {
		params.IssueDepth = *depth
	}

	if params.Year == 0 {
		return state.LastUsed{}, fmt.Errorf("-year is required (no last-used value found)\n\nRun with -state to remember parameters between runs")
	}
	return params, nil
}
