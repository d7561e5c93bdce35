package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rulekit-xyz/go-rulekit/svrf"
)

func stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rulekit stats <deck.svrf>

Show layer and rule statistics for an SVRF deck.

Examples:
  rulekit stats drc_rules.svrf
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

	s := deck.Stats()
	fmt.Printf("Layers: %d (%d primary, %d derived)\n",
		s.Layers, s.PrimaryLayers, s.DerivedLayers)
	fmt.Printf("Rules: %d\n", s.Rules)
	fmt.Printf("Includes: %d\n", s.Includes)
	fmt.Printf("Diagnostics: %d errors, %d warnings\n", s.Errors, s.Warnings)

	fmt.Println("\nRules by category:")
	for _, line := range s.CategoryCounts() {
		fmt.Printf("  %s\n", line)
	}
	return nil
}
