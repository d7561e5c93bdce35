package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// ruleRecord is the JSONL shape of one parsed rule.
type ruleRecord struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	PrimaryLayer   string   `json:"primary_layer,omitempty"`
	SecondaryLayer string   `json:"secondary_layer,omitempty"`
	Operator       string   `json:"operator,omitempty"`
	Value          float64  `json:"value"`
	ExtraParams    []string `json:"extra_params,omitempty"`
	Line           int      `json:"line"`
}

// diagnosticRecord is the JSONL shape of one diagnostic.
type diagnosticRecord struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

// WriteRulesJSONL writes one JSON object per rule, one per line, in deck
// order.
func WriteRulesJSONL(w io.Writer, deck *svrf.Deck) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range deck.Rules {
		rec := ruleRecord{
			Name:           r.Name,
			Category:       r.Category.String(),
			Description:    r.Description,
			PrimaryLayer:   r.PrimaryLayer,
			SecondaryLayer: r.SecondaryLayer,
			Operator:       r.Operator,
			Value:          r.Value,
			ExtraParams:    r.ExtraParams,
			Line:           r.SourceLine,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding rule %s: %w", r.Name, err)
		}
	}
	return bw.Flush()
}

// WriteDiagnosticsJSONL writes one JSON object per diagnostic, one per line.
func WriteDiagnosticsJSONL(w io.Writer, deck *svrf.Deck) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, d := range deck.Diagnostics {
		rec := diagnosticRecord{
			Severity: d.Severity.String(),
			Line:     d.Line,
			Message:  d.Message,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding diagnostic: %w", err)
		}
	}
	return bw.Flush()
}
