// Package icv translates a parsed SVRF deck into IC Validator rule syntax.
//
// Translation is split in two: Translate maps the structured model to typed
// records (testable without any formatting), and Generate serializes those
// records into the output document.
package icv

import (
	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// TranslatedRule is one rule's image in the target language. Source points
// back at the originating rule for traceability; the translator never
// mutates it.
type TranslatedRule struct {
	Name        string
	Description string
	Check       Check
	Source      *svrf.Rule
}

// Result holds one translation pass over a deck. Layer declarations and
// rules keep deck declaration order: ICV resolves layer names by first
// occurrence, so order is a correctness property, not cosmetics.
type Result struct {
	Rules      []TranslatedRule
	LayerDecls []string
	Skipped    []*svrf.Rule // unknown-category rules, excluded from output
	Total      int          // all parsed rules, unknown included
}

// Translated returns the number of successfully translated rules.
func (res *Result) Translated() int { return len(res.Rules) }

// Coverage is translated/total. Unknown rules count in the denominator
// only, so coverage is strictly below 1.0 whenever any rule went
// unrecognized. An empty deck translates vacuously with coverage 1.0.
func (res *Result) Coverage() float64 {
	if res.Total == 0 {
		return 1.0
	}
	return float64(len(res.Rules)) / float64(res.Total)
}

// ByCategory counts translated rules per category.
func (res *Result) ByCategory() map[svrf.Category]int {
	counts := make(map[svrf.Category]int)
	for _, tr := range res.Rules {
		counts[tr.Source.Category]++
	}
	return counts
}

// Translate maps every translatable rule and every layer of the deck to
// its ICV form. The deck is read, never written; translating the same deck
// twice yields identical results.
func Translate(deck *svrf.Deck) *Result {
	res := &Result{Total: len(deck.Rules)}

	res.LayerDecls = make([]string, 0, len(deck.Layers))
	for _, l := range deck.Layers {
		res.LayerDecls = append(res.LayerDecls, LayerDecl(l))
	}

	for _, r := range deck.Rules {
		render, ok := renderers[r.Category]
		if !ok {
			// Unknown, by construction: every recognized category has a
			// renderer, enforced by TestRendererCoverage.
			res.Skipped = append(res.Skipped, r)
			continue
		}
		res.Rules = append(res.Rules, TranslatedRule{
			Name:        r.Name,
			Description: r.Description,
			Check:       render(r),
			Source:      r,
		})
	}
	return res
}
