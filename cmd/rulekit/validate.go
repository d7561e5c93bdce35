package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rulekit-xyz/go-rulekit/report"
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	diagCSV := fs.String("csv", "", "Write diagnostics as CSV to file")
	diagJSONL := fs.String("jsonl", "", "Write diagnostics as JSON Lines to file")
	strict := fs.Bool("strict", false, "Exit non-zero on warnings as well as errors")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rulekit validate <deck.svrf> [options]

Parse an SVRF deck and report every diagnostic without translating.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Checks performed:
  - Layer definitions (GDS numbers, derived boolean expressions)
  - Rule block structure (unterminated or unnamed blocks)
  - Layer references (rules naming undefined layers)
  - Constraint values (negative or implausibly large)

Examples:
  rulekit validate drc_rules.svrf
  rulekit validate drc_rules.svrf --strict --csv diagnostics.csv
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("deck file required")
	}

	deck, err := svrf.ParseFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("parse deck: %w", err)
	}

	for _, d := range deck.Diagnostics {
		fmt.Println(d)
	}

	if *diagCSV != "" {
		f, err := os.Create(*diagCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteDiagnosticsCSV(f, deck); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	if *diagJSONL != "" {
		f, err := os.Create(*diagJSONL)
		if err != nil {
			return fmt.Errorf("create jsonl: %w", err)
		}
		defer f.Close()
		if err := report.WriteDiagnosticsJSONL(f, deck); err != nil {
			return fmt.Errorf("write jsonl: %w", err)
		}
	}

	errs, warns := len(deck.Errors()), len(deck.Warnings())
	fmt.Printf("%d errors, %d warnings\n", errs, warns)
	if errs > 0 || (*strict && warns > 0) {
		return fmt.Errorf("deck has diagnostics")
	}
	return nil
}
