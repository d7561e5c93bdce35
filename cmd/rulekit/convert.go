package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/rulekit-xyz/go-rulekit/catalog"
	"github.com/rulekit-xyz/go-rulekit/config"
	"github.com/rulekit-xyz/go-rulekit/icv"
	"github.com/rulekit-xyz/go-rulekit/report"
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

func convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	outputFile := fs.String("output", "", "Output runset file (default: input with .rs extension)")
	configFile := fs.String("config", "", "TOML config file")
	summaryFile := fs.String("summary", "", "Write a JSON conversion summary to file")
	rulesCSV := fs.String("rules-csv", "", "Write parsed rules as CSV to file")
	noCatalog := fs.Bool("no-catalog", false, "Do not record this run in the catalog")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rulekit convert <deck.svrf> [options]

Translate a Calibre SVRF rule deck into an IC Validator runset.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Basic conversion
  rulekit convert drc_rules.svrf

  # Choose the output path and write a summary
  rulekit convert drc_rules.svrf --output drc.rs --summary drc.json

  # Use project settings
  rulekit convert drc_rules.svrf --config rulekit.toml
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("deck file required")
	}

	inputFile := fs.Arg(0)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	deck, err := svrf.ParseFile(inputFile)
	if err != nil {
		return fmt.Errorf("parse deck: %w", err)
	}
	printDiagnostics(deck)

	res := icv.Translate(deck)

	opts := icv.Options{
		Technology:  cfg.Technology,
		ProcessNode: cfg.ProcessNode,
		RunOptions:  cfg.RunOptions,
	}
	runset := icv.Generate(res, opts)

	out := *outputFile
	if out == "" {
		out = strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ".rs"
	}
	if err := os.WriteFile(out, []byte(runset), 0644); err != nil {
		return fmt.Errorf("write runset: %w", err)
	}

	if *summaryFile != "" {
		f, err := os.Create(*summaryFile)
		if err != nil {
			return fmt.Errorf("create summary: %w", err)
		}
		defer f.Close()
		if err := report.NewSummary(deck, res).WriteJSON(f); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if *rulesCSV != "" {
		f, err := os.Create(*rulesCSV)
		if err != nil {
			return fmt.Errorf("create rules csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteRulesCSV(f, deck); err != nil {
			return fmt.Errorf("write rules csv: %w", err)
		}
	}

	if !*noCatalog {
		if err := recordRun(cfg, inputFile, deck, res); err != nil {
			log.Warn().Err(err).Msg("catalog record failed")
		}
	}

	fmt.Printf("Parsed %d layers, %d rules (%d diagnostics)\n",
		len(deck.Layers), len(deck.Rules), len(deck.Diagnostics))
	fmt.Printf("Translated %d/%d rules (%.1f%% coverage)\n",
		res.Translated(), res.Total, res.Coverage()*100)
	fmt.Printf("Runset written: %s\n", out)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func printDiagnostics(deck *svrf.Deck) {
	for _, d := range deck.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: line %d: %s\n", d.Severity, d.Line, d.Message)
	}
}

func recordRun(cfg *config.Config, inputFile string, deck *svrf.Deck, res *icv.Result) error {
	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := catalog.NewRun(inputFile)
	run.Technology = cfg.Technology
	run.ProcessNode = cfg.ProcessNode
	run.Layers = len(deck.Layers)
	run.Rules = len(deck.Rules)
	run.Translated = res.Translated()
	run.Errors = len(deck.Errors())
	run.Warnings = len(deck.Warnings())
	return store.SaveRun(context.Background(), run)
}
