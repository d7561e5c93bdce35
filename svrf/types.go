// Package svrf parses Calibre SVRF rule decks into a structured model of
// layers, design-rule checks, and diagnostics.
package svrf

import (
	"fmt"
	"sort"
)

// Category classifies a design-rule check. The set is closed: the icv
// package keeps one renderer per category, and Categories() is the single
// enumeration both sides are tested against.
type Category int

const (
	Unknown Category = iota
	Width
	Length
	Spacing      // same-layer spacing
	InterSpacing // spacing between two layers
	Area
	Enclosure
	Density
	Antenna
	MultiPatterning
	PatternMatch
)

var categoryNames = map[Category]string{
	Unknown:         "unknown",
	Width:           "width",
	Length:          "length",
	Spacing:         "spacing",
	InterSpacing:    "inter_spacing",
	Area:            "area",
	Enclosure:       "enclosure",
	Density:         "density",
	Antenna:         "antenna",
	MultiPatterning: "multi_patterning",
	PatternMatch:    "pattern_match",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Categories returns every translatable category, in declaration order.
// Unknown is excluded: unknown rules are reported, never translated.
func Categories() []Category {
	return []Category{
		Width, Length, Spacing, InterSpacing, Area,
		Enclosure, Density, Antenna, MultiPatterning, PatternMatch,
	}
}

// Layer is a region-defining entity. A primary layer carries a GDS mask
// number; a derived layer carries a boolean expression over other layers.
// Exactly one of the two forms holds: Expression is empty for primary
// layers and non-empty for derived ones.
type Layer struct {
	Name       string
	GDSNumber  int    // valid only for primary layers
	Expression string // boolean formula, derived layers only
	SourceLine int
}

// IsPrimary reports whether the layer maps directly to a mask number.
func (l *Layer) IsPrimary() bool { return l.Expression == "" }

// IsDerived reports whether the layer is defined by an expression.
func (l *Layer) IsDerived() bool { return l.Expression != "" }

// Rule is one parsed design-rule check.
type Rule struct {
	Name           string
	Description    string
	Category       Category
	PrimaryLayer   string
	SecondaryLayer string // inter-layer spacing, enclosure, antenna
	Operator       string // one of < > == >= <=
	Value          float64
	ExtraParams    []string // category-specific qualifiers, in source order
	SourceLine     int
	RawText        string // whitespace-normalized block body, kept for unknown rules
}

// HasParam reports whether the rule carries the given extra qualifier.
func (r *Rule) HasParam(name string) bool {
	for _, p := range r.ExtraParams {
		if p == name {
			return true
		}
	}
	return false
}

// Severity distinguishes structural parse failures from semantically
// questionable constructs that still parsed.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one error or warning tied to a source line.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
}

// Deck is the structured model of one rule deck. Layers and rules appear
// in deck declaration order. A Deck is immutable once Finish returns it;
// translation reads it but never writes.
type Deck struct {
	Layers      []*Layer
	Rules       []*Rule
	Includes    []string
	Diagnostics []Diagnostic
}

// Layer returns the layer with the given name, or nil. With duplicate
// definitions the surviving (last) definition is returned.
func (d *Deck) Layer(name string) *Layer {
	for _, l := range d.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Errors returns the structural parse failures.
func (d *Deck) Errors() []Diagnostic {
	return d.bySeverity(SeverityError)
}

// Warnings returns the semantic warnings.
func (d *Deck) Warnings() []Diagnostic {
	return d.bySeverity(SeverityWarning)
}

func (d *Deck) bySeverity(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, diag := range d.Diagnostics {
		if diag.Severity == s {
			out = append(out, diag)
		}
	}
	return out
}

// Stats summarizes a parsed deck for reporting.
type Stats struct {
	Layers        int
	PrimaryLayers int
	DerivedLayers int
	Rules         int
	ByCategory    map[Category]int
	Includes      int
	Errors        int
	Warnings      int
}

// Stats computes summary counts over the deck.
func (d *Deck) Stats() Stats {
	s := Stats{
		Layers:   len(d.Layers),
		Rules:    len(d.Rules),
		Includes: len(d.Includes),
	}
	s.ByCategory = make(map[Category]int)
	for _, l := range d.Layers {
		if l.IsPrimary() {
			s.PrimaryLayers++
		} else {
			s.DerivedLayers++
		}
	}
	for _, r := range d.Rules {
		s.ByCategory[r.Category]++
	}
	for _, diag := range d.Diagnostics {
		if diag.Severity == SeverityError {
			s.Errors++
		} else {
			s.Warnings++
		}
	}
	return s
}

// CategoryCounts returns the per-category rule counts as sorted
// / "name: count" lines, for stable display.
func (s Stats) CategoryCounts() []string {
	var names []string
	for c := range s.ByCategory {
		names = append(names, c.String())
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		for c, n := range s.ByCategory {
			if c.String() == name {
				out = append(out, fmt.Sprintf("%s: %d", name, n))
			}
		}
	}
	return out
}
