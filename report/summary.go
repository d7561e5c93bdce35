package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rulekit-xyz/go-rulekit/icv"
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// Summary is the machine-readable run summary consumed by the reporting
// layer.
type Summary struct {
	Layers        int            `json:"layers"`
	PrimaryLayers int            `json:"primary_layers"`
	DerivedLayers int            `json:"derived_layers"`
	Rules         int            `json:"rules"`
	ByCategory    map[string]int `json:"rules_by_category"`
	Translated    int            `json:"translated"`
	Coverage      float64        `json:"coverage"`
	Errors        int            `json:"errors"`
	Warnings      int            `json:"warnings"`
}

// NewSummary combines deck statistics with a translation result.
func NewSummary(deck *svrf.Deck, res *icv.Result) Summary {
	stats := deck.Stats()
	byCategory := make(map[string]int, len(stats.ByCategory))
	for c, n := range stats.ByCategory {
		byCategory[c.String()] = n
	}
	return Summary{
		Layers:        stats.Layers,
		PrimaryLayers: stats.PrimaryLayers,
		DerivedLayers: stats.DerivedLayers,
		Rules:         stats.Rules,
		ByCategory:    byCategory,
		Translated:    res.Translated(),
		Coverage:      res.Coverage(),
		Errors:        stats.Errors,
		Warnings:      stats.Warnings,
	}
}

// WriteJSON writes the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
