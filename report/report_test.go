package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rulekit-xyz/go-rulekit/icv"
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

const testDeck = `LAYER M1 50
M1_WIDTH { @ "min width" INTERNAL1 M1 < 0.032 }
MYSTERY { FROB M1 }
`

func TestWriteRulesCSV(t *testing.T) {
	deck := svrf.Parse(testDeck)
	var buf bytes.Buffer
	if err := WriteRulesCSV(&buf, deck); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,category,primary_layer,secondary_layer,operator,value,line" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "M1_WIDTH,width,M1,") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "MYSTERY,unknown,") {
		t.Errorf("unknown rule missing from report: %s", lines[2])
	}
}

func TestWriteDiagnosticsCSV(t *testing.T) {
	deck := svrf.Parse("LAYER M1 fifty")
	var buf bytes.Buffer
	if err := WriteDiagnosticsCSV(&buf, deck); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "error,1,") {
		t.Errorf("diagnostic row missing: %s", out)
	}
}

func TestWriteRulesJSONL(t *testing.T) {
	deck := svrf.Parse(testDeck)
	var buf bytes.Buffer
	if err := WriteRulesJSONL(&buf, deck); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var rec ruleRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if rec.Name != "M1_WIDTH" || rec.Category != "width" || rec.Value != 0.032 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestSummary(t *testing.T) {
	deck := svrf.Parse(testDeck)
	res := icv.Translate(deck)
	s := NewSummary(deck, res)

	if s.Rules != 2 || s.Translated != 1 {
		t.Errorf("expected 2 rules / 1 translated, got %d / %d", s.Rules, s.Translated)
	}
	if s.Coverage != 0.5 {
		t.Errorf("expected coverage 0.5, got %g", s.Coverage)
	}
	if s.ByCategory["unknown"] != 1 {
		t.Errorf("unknown count missing: %v", s.ByCategory)
	}

	var buf bytes.Buffer
	if err := s.WriteJSON(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if decoded.Coverage != 0.5 {
		t.Errorf("round-trip coverage = %g", decoded.Coverage)
	}
}
