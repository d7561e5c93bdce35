package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rulekit-xyz/go-rulekit/catalog"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configFile := fs.String("config", "", "TOML config file")
	limit := fs.Int("limit", 20, "Maximum runs to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rulekit history [options]

Show past conversion runs recorded in the catalog, newest first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  %s/%s  %d/%d rules (%.1f%%)  %de %dw\n",
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.InputFile,
			run.Technology, run.ProcessNode,
			run.Translated, run.Rules, run.Coverage()*100,
			run.Errors, run.Warnings)
	}
	return nil
}
