package icv

import (
	"fmt"
	"regexp"

	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// Check is a rendered target-language predicate. Conjuncts is set when a
// single source rule expands to several checks that the output document
// emits as separate rule blocks (rectangle pattern rules).
type Check struct {
	Expr      string
	Conjuncts []string
}

// renderFunc maps one parsed rule to its ICV predicate. Renderers are pure;
// they read the rule and never mutate it.
type renderFunc func(r *svrf.Rule) Check

// renderers is total over the non-Unknown category set. The parser's
// matcher table and this map are kept in lock-step; TestRendererCoverage
// fails if a category is added on one side only.
var renderers = map[svrf.Category]renderFunc{
	svrf.Width:           renderWidth,
	svrf.Length:          renderLength,
	svrf.Spacing:         renderSpacing,
	svrf.InterSpacing:    renderInterSpacing,
	svrf.Area:            renderArea,
	svrf.Enclosure:       renderEnclosure,
	svrf.Density:         renderDensity,
	svrf.Antenna:         renderAntenna,
	svrf.MultiPatterning: renderMultiPatterning,
	svrf.PatternMatch:    renderPatternMatch,
}

func renderWidth(r *svrf.Rule) Check {
	fn := "width"
	if r.HasParam("OPPOSITE") {
		fn = "width_opposite"
	}
	return Check{Expr: fmt.Sprintf("%s(%s) %s %s", fn, r.PrimaryLayer, r.Operator, formatValue(r.Value))}
}

func renderLength(r *svrf.Rule) Check {
	return Check{Expr: fmt.Sprintf("length(%s) %s %s", r.PrimaryLayer, r.Operator, formatValue(r.Value))}
}

func renderSpacing(r *svrf.Rule) Check {
	return Check{Expr: fmt.Sprintf("space(%s) %s %s", r.PrimaryLayer, r.Operator, formatValue(r.Value))}
}

func renderInterSpacing(r *svrf.Rule) Check {
	second := r.SecondaryLayer
	if second == "" {
		second = inferSecondLayer(r.Name, r.Description)
	}
	if second == "" {
		return Check{Expr: fmt.Sprintf("space(%s) %s %s", r.PrimaryLayer, r.Operator, formatValue(r.Value))}
	}
	return Check{Expr: fmt.Sprintf("space(%s, %s) %s %s", r.PrimaryLayer, second, r.Operator, formatValue(r.Value))}
}

func renderArea(r *svrf.Rule) Check {
	return Check{Expr: fmt.Sprintf("area(%s) %s %s", r.PrimaryLayer, r.Operator, formatValue(r.Value))}
}

// renderEnclosure maps "INNER NOT INSIDE OUTER BY <op> v" to
// enclosure(OUTER, INNER). ICV expresses enclosure checks only as minimum
// bounds, so an exact-equality source constraint is deliberately rendered
// as >= with the value unchanged.
func renderEnclosure(r *svrf.Rule) Check {
	op := r.Operator
	if op == "==" || op == ">=" {
		op = ">="
	}
	return Check{Expr: fmt.Sprintf("enclosure(%s, %s) %s %s", r.SecondaryLayer, r.PrimaryLayer, op, formatValue(r.Value))}
}

func renderDensity(r *svrf.Rule) Check {
	windowX, windowY := "100", "100"
	if len(r.ExtraParams) >= 2 {
		windowX, windowY = r.ExtraParams[0], r.ExtraParams[1]
	}
	return Check{Expr: fmt.Sprintf("density(%s, %s, %s) %s %s", r.PrimaryLayer, windowX, windowY, r.Operator, formatValue(r.Value))}
}

// renderAntenna is always upper-bounded: ICV antenna checks constrain a
// maximum charge-collection ratio regardless of the source operator.
func renderAntenna(r *svrf.Rule) Check {
	gate := r.SecondaryLayer
	if gate == "" {
		gate = "GATE"
	}
	return Check{Expr: fmt.Sprintf("antenna_ratio(%s, %s) <= %s", r.PrimaryLayer, gate, formatValue(r.Value))}
}

func renderMultiPatterning(r *svrf.Rule) Check {
	fn := "mp_space"
	if r.HasParam("SAME_MASK") {
		fn = "space_same_mask"
	}
	return Check{Expr: fmt.Sprintf("%s(%s) %s %s", fn, r.PrimaryLayer, r.Operator, formatValue(r.Value))}
}

// renderPatternMatch expands a rectangle constraint into a length check
// and a width check. The conjuncts are emitted as separate rule blocks so
// the checking engine reports them independently.
func renderPatternMatch(r *svrf.Rule) Check {
	if len(r.ExtraParams) < 4 {
		return Check{Expr: fmt.Sprintf("pattern_check(%s)", r.PrimaryLayer)}
	}
	lengthCheck := fmt.Sprintf("length(%s) %s %s", r.PrimaryLayer, r.ExtraParams[0], r.ExtraParams[1])
	widthCheck := fmt.Sprintf("width(%s) %s %s", r.PrimaryLayer, r.ExtraParams[2], r.ExtraParams[3])
	return Check{
		Expr:      fmt.Sprintf("(%s) && (%s)", lengthCheck, widthCheck),
		Conjuncts: []string{lengthCheck, widthCheck},
	}
}

// second-layer inference for EXTERNAL rules that name only one layer; the
// counterpart is conventionally encoded in the rule name or description.
var secondLayerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+)_(\w+)_SPACE`),
	regexp.MustCompile(`(?i)(\w+)\s+to\s+(\w+)`),
	regexp.MustCompile(`(?i)(\w+)\s+and\s+(\w+)`),
}

func inferSecondLayer(name, description string) string {
	for _, re := range secondLayerPatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return m[2]
		}
		if description != "" {
			if m := re.FindStringSubmatch(description); m != nil {
				return m[2]
			}
		}
	}
	return ""
}

// formatValue renders constraint values without a trailing decimal for
// whole numbers, matching ICV deck conventions.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
