package svrf

import (
	"reflect"
	"testing"
)

func TestClassifyRule_Categories(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ruleMatch
	}{
		{
			"width",
			`M1_WIDTH { @ "w" INTERNAL1 M1 < 0.032 }`,
			ruleMatch{Category: Width, PrimaryLayer: "M1", Operator: "<", Value: 0.032},
		},
		{
			"width opposite qualifier",
			`M1_WIDTH_OPP { INTERNAL1 M1 < 0.05 OPPOSITE }`,
			ruleMatch{Category: Width, PrimaryLayer: "M1", Operator: "<", Value: 0.05, Extra: []string{"OPPOSITE"}},
		},
		{
			"length",
			`POLY_LEN { INTERNAL2 POLY > 0.18 }`,
			ruleMatch{Category: Length, PrimaryLayer: "POLY", Operator: ">", Value: 0.18},
		},
		{
			"same-layer spacing",
			`M1_SPACE { EXTERNAL1 M1 < 0.21 }`,
			ruleMatch{Category: Spacing, PrimaryLayer: "M1", Operator: "<", Value: 0.21},
		},
		{
			"inter-layer spacing",
			`M1_M2 { EXTERNAL M1 M2 < 0.14 }`,
			ruleMatch{Category: InterSpacing, PrimaryLayer: "M1", SecondaryLayer: "M2", Operator: "<", Value: 0.14},
		},
		{
			"inter-layer spacing single layer",
			`GATE_SP { EXTERNAL GATE < 0.25 }`,
			ruleMatch{Category: InterSpacing, PrimaryLayer: "GATE", Operator: "<", Value: 0.25},
		},
		{
			"area",
			`M1_AREA { AREA M1 < 0.02 }`,
			ruleMatch{Category: Area, PrimaryLayer: "M1", Operator: "<", Value: 0.02},
		},
		{
			"enclosure",
			`VIA_ENC { VIA1 NOT INSIDE M1 BY >= 0.05 }`,
			ruleMatch{Category: Enclosure, PrimaryLayer: "VIA1", SecondaryLayer: "M1", Operator: ">=", Value: 0.05},
		},
		{
			"density",
			`M1_DENS { DENSITY M1 WINDOW 100 100 < 0.7 }`,
			ruleMatch{Category: Density, PrimaryLayer: "M1", Operator: "<", Value: 0.7, Extra: []string{"100", "100"}},
		},
		{
			"antenna",
			`ANT_M1 { ANTENNA M1 GATE MAX RATIO 400 }`,
			ruleMatch{Category: Antenna, PrimaryLayer: "M1", SecondaryLayer: "GATE", Operator: "<=", Value: 400},
		},
		{
			"same-mask multi-patterning",
			`M1_SM { EXTERNAL1 M1 < 0.08 SAME_MASK }`,
			ruleMatch{Category: MultiPatterning, PrimaryLayer: "M1", Operator: "<", Value: 0.08, Extra: []string{"SAME_MASK"}},
		},
		{
			"rectangle pattern",
			`RECT_M1 { RECTANGLE M1 LENGTH > 1.0 WIDTH < 0.5 }`,
			ruleMatch{Category: PatternMatch, PrimaryLayer: "M1", Extra: []string{">", "1.0", "<", "0.5"}},
		},
		{
			"singular qualifier appended",
			`M1_W { INTERNAL1 M1 < 0.1 SINGULAR }`,
			ruleMatch{Category: Width, PrimaryLayer: "M1", Operator: "<", Value: 0.1, Extra: []string{"SINGULAR"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyRule(tt.content)
			if !ok {
				t.Fatalf("no category matched %q", tt.content)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("classifyRule(%q)\n got %+v\nwant %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestClassifyRule_NoMatch(t *testing.T) {
	got, ok := classifyRule(`X { @ "?" DO SOMETHING ELSE }`)
	if ok {
		t.Fatalf("expected no match, got %+v", got)
	}
	if got.Category != Unknown {
		t.Errorf("expected unknown category, got %v", got.Category)
	}
}

// Inter-layer spacing names two layers and must win over the single-layer
// pattern that would otherwise match the first name only.
func TestClassifyRule_PriorityOrder(t *testing.T) {
	got, _ := classifyRule(`R { EXTERNAL M1 M2 < 0.14 }`)
	if got.Category != InterSpacing || got.SecondaryLayer != "M2" {
		t.Errorf("two-layer spacing lost priority: %+v", got)
	}

	// SAME_MASK qualifier must win over plain same-layer spacing.
	got, _ = classifyRule(`R { EXTERNAL1 M1 < 0.08 SAME_MASK }`)
	if got.Category != MultiPatterning {
		t.Errorf("same-mask pattern lost priority: %+v", got)
	}

	// OPPOSITE qualifier must still classify as width, with the qualifier kept.
	got, _ = classifyRule(`R { INTERNAL1 M1 < 0.05 OPPOSITE }`)
	if got.Category != Width || !reflect.DeepEqual(got.Extra, []string{"OPPOSITE"}) {
		t.Errorf("opposite qualifier mishandled: %+v", got)
	}
}
