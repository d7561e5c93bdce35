package svrf

import (
	"regexp"
	"strconv"
)

// ruleMatch is the result of classifying a rule-block body against one
// category pattern.
type ruleMatch struct {
	Category       Category
	PrimaryLayer   string
	SecondaryLayer string
	Operator       string
	Value          float64
	Extra          []string
}

// matcher pairs a category with its recognition pattern and field
// extractor. Adding a category means appending one matcher here and one
// renderer in the icv package; TestRendererCoverage keeps the two in step.
type matcher struct {
	category Category
	re       *regexp.Regexp
	extract  func(m []string) ruleMatch
}

const (
	opPat = `(<=|>=|==|<|>)`
	// negative values parse fine; the parser flags them as a warning
	numPat = `(-?[0-9]+(?:\.[0-9]+)?)`
)

// ruleMatchers is tried in order; the first hit wins. Order is part of the
// contract: qualified patterns (OPPOSITE, SAME_MASK) and two-layer
// patterns come before the plainer patterns they textually contain,
// otherwise the plain pattern would greedily match first.
var ruleMatchers = []matcher{
	{Enclosure, regexp.MustCompile(`\b(\w+)\s+NOT\s+INSIDE\s+(\w+)\s+BY\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], SecondaryLayer: m[2], Operator: m[3], Value: num(m[4])}
		}},
	{Antenna, regexp.MustCompile(`\bANTENNA\s+(\w+)\s+(\w+)\s+MAX\s+RATIO\s+` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], SecondaryLayer: m[2], Operator: "<=", Value: num(m[3])}
		}},
	{PatternMatch, regexp.MustCompile(`\bRECTANGLE\s+(\w+)\s+LENGTH\s*` + opPat + `\s*` + numPat + `\s+WIDTH\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Extra: []string{m[2], m[3], m[4], m[5]}}
		}},
	{Density, regexp.MustCompile(`\bDENSITY\s+(\w+)\s+WINDOW\s+` + numPat + `\s+` + numPat + `\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[4], Value: num(m[5]), Extra: []string{m[2], m[3]}}
		}},
	{MultiPatterning, regexp.MustCompile(`\bEXTERNAL1\s+(\w+)\s*` + opPat + `\s*` + numPat + `\s+SAME_MASK\b`),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3]), Extra: []string{"SAME_MASK"}}
		}},
	// Two-layer EXTERNAL before the single-layer forms: a same-layer
	// pattern would otherwise match the first layer name and leave the
	// second dangling.
	{InterSpacing, regexp.MustCompile(`\bEXTERNAL\s+(\w+)\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], SecondaryLayer: m[2], Operator: m[3], Value: num(m[4])}
		}},
	// Single-layer EXTERNAL is still an inter-layer check in the source
	// grammar; the counterpart layer is inferred from the rule name by
	// the translator.
	{InterSpacing, regexp.MustCompile(`\bEXTERNAL\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3])}
		}},
	{Spacing, regexp.MustCompile(`\bEXTERNAL1\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3])}
		}},
	{Width, regexp.MustCompile(`\bINTERNAL1\s+(\w+)\s*` + opPat + `\s*` + numPat + `\s+OPPOSITE\b`),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3]), Extra: []string{"OPPOSITE"}}
		}},
	{Width, regexp.MustCompile(`\bINTERNAL1\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3])}
		}},
	{Length, regexp.MustCompile(`\bINTERNAL2\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3])}
		}},
	{Area, regexp.MustCompile(`\bAREA\s+(\w+)\s*` + opPat + `\s*` + numPat),
		func(m []string) ruleMatch {
			return ruleMatch{PrimaryLayer: m[1], Operator: m[2], Value: num(m[3])}
		}},
}

var singularPattern = regexp.MustCompile(`\bSINGULAR\b`)

// classifyRule matches a whitespace-normalized rule-block body against the
// category patterns. The second return value is false when no pattern
// matched, in which case the caller records the rule as Unknown.
func classifyRule(content string) (ruleMatch, bool) {
	for _, m := range ruleMatchers {
		sub := m.re.FindStringSubmatch(content)
		if sub == nil {
			continue
		}
		rm := m.extract(sub)
		rm.Category = m.category
		if singularPattern.MatchString(content) {
			rm.Extra = append(rm.Extra, "SINGULAR")
		}
		return rm, true
	}
	return ruleMatch{Category: Unknown}, false
}

func num(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
