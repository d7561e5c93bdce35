package icv

import (
	"fmt"
	"regexp"

	"github.com/rulekit-xyz/go-rulekit/svrf"
)

// Boolean keyword substitution is lexical, on word boundaries only:
// parenthesization, layer names, and operand order pass through untouched,
// and a layer name containing AND/OR/NOT as a substring is never corrupted.
var (
	andPattern = regexp.MustCompile(`\bAND\b`)
	orPattern  = regexp.MustCompile(`\bOR\b`)
	notPattern = regexp.MustCompile(`\bNOT\b`)
)

// TranslateLayerExpression rewrites SVRF boolean operators to their ICV
// equivalents: AND -> &, OR -> |, NOT -> !.
func TranslateLayerExpression(expr string) string {
	out := andPattern.ReplaceAllString(expr, "&")
	out = orPattern.ReplaceAllString(out, "|")
	out = notPattern.ReplaceAllString(out, "!")
	return out
}

// LayerDecl renders one ICV layer declaration.
func LayerDecl(l *svrf.Layer) string {
	if l.IsPrimary() {
		return fmt.Sprintf("LAYER %s = %d;", l.Name, l.GDSNumber)
	}
	return fmt.Sprintf("LAYER %s = %s;", l.Name, TranslateLayerExpression(l.Expression))
}
