package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phuslu/log"

	"github.com/rulekit-xyz/go-rulekit/catalog"
	"github.com/rulekit-xyz/go-rulekit/icv"
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

type batchResult struct {
	input      string
	output     string
	translated int
	total      int
	err        error
}

func batch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	outDir := fs.String("out-dir", "", "Directory for generated runsets (default: alongside inputs)")
	configFile := fs.String("config", "", "TOML config file")
	workers := fs.Int("workers", 4, "Number of decks to convert concurrently")
	noCatalog := fs.Bool("no-catalog", false, "Do not record runs in the catalog")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rulekit batch <dir> [options]

Convert every .svrf deck found in a directory.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rulekit batch ./decks --out-dir ./runsets
  rulekit batch ./pdk --workers 8 --config rulekit.toml
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("deck directory required")
	}

	dir := fs.Arg(0)
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	setLogLevel(cfg.LogLevel)

	matches, err := filepath.Glob(filepath.Join(dir, "*.svrf"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .svrf files in %s", dir)
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	opts := icv.Options{
		Technology:  cfg.Technology,
		ProcessNode: cfg.ProcessNode,
		RunOptions:  cfg.RunOptions,
	}

	jobs := make(chan string)
	results := make(chan batchResult)

	var wg sync.WaitGroup
	n := *workers
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input := range jobs {
				results <- convertOne(input, *outDir, opts)
			}
		}()
	}

	go func() {
		for _, m := range matches {
			jobs <- m
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var store *catalog.Store
	if !*noCatalog {
		store, err = catalog.Open(cfg.CatalogPath)
		if err != nil {
			log.Warn().Err(err).Msg("catalog unavailable")
		} else {
			defer store.Close()
		}
	}

	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", res.input, res.err)
			continue
		}
		fmt.Printf("OK   %s -> %s (%d/%d rules)\n",
			res.input, res.output, res.translated, res.total)
		if store != nil {
			run := catalog.NewRun(res.input)
			run.Technology = cfg.Technology
			run.ProcessNode = cfg.ProcessNode
			run.Rules = res.total
			run.Translated = res.translated
			if err := store.SaveRun(context.Background(), run); err != nil {
				log.Warn().Err(err).Str("input", res.input).Msg("catalog record failed")
			}
		}
	}

	fmt.Printf("Converted %d/%d decks\n", len(matches)-failed, len(matches))
	if failed > 0 {
		return fmt.Errorf("%d decks failed", failed)
	}
	return nil
}

func convertOne(input, outDir string, opts icv.Options) batchResult {
	deck, err := svrf.ParseFile(input)
	if err != nil {
		return batchResult{input: input, err: err}
	}

	res := icv.Translate(deck)
	runset := icv.Generate(res, opts)

	out := strings.TrimSuffix(input, filepath.Ext(input)) + ".rs"
	if outDir != "" {
		out = filepath.Join(outDir, filepath.Base(out))
	}
	if err := os.WriteFile(out, []byte(runset), 0644); err != nil {
		return batchResult{input: input, err: err}
	}
	return batchResult{
		input:      input,
		output:     out,
		translated: res.Translated(),
		total:      res.Total,
	}
}
