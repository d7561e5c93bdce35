// Package report serializes conversion results for the surrounding
// tooling: diagnostics and rule summaries as CSV or JSONL, and an overall
// run summary as JSON.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// WriteDiagnosticsCSV writes one row per diagnostic: severity, line, message.
func WriteDiagnosticsCSV(w io.Writer, deck *svrf.Deck) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"severity", "line", "message"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, d := range deck.Diagnostics {
		row := []string{d.Severity.String(), strconv.Itoa(d.Line), d.Message}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing diagnostic: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRulesCSV writes one row per parsed rule, in deck order.
func WriteRulesCSV(w io.Writer, deck *svrf.Deck) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "category", "primary_layer", "secondary_layer", "operator", "value", "line"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range deck.Rules {
		row := []string{
			r.Name,
			r.Category.String(),
			r.PrimaryLayer,
			r.SecondaryLayer,
			r.Operator,
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			strconv.Itoa(r.SourceLine),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing rule %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
