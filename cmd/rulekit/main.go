package main

import (
	"fmt"
	"os"

	"github.com/phuslu/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		if err := convert(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := stats(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "batch":
		if err := batch(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("rulekit version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func setLogLevel(level string) {
	log.DefaultLogger.Level = log.ParseLevel(level)
}

func printUsage() {
	fmt.Println(`rulekit - SVRF to ICV design rule deck translator

Usage:
  rulekit <command> [options]

Commands:
  convert    Translate an SVRF deck to an ICV runset
  validate   Parse an SVRF deck and report diagnostics
  stats      Show layer and rule statistics for a deck
  batch      Convert every deck in a directory
  history    Show past conversion runs from the catalog
  help       Show this help message
  version    Show version information

Examples:
  # Translate a deck
  rulekit convert drc_rules.svrf --output drc_rules.rs

  # Check a deck without translating
  rulekit validate drc_rules.svrf

  # Convert a whole PDK directory
  rulekit batch ./decks --out-dir ./runsets

  # Review past runs
  rulekit history --limit 20

For command-specific help, run:
  rulekit <command> --help`)
}
