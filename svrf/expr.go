package svrf

import (
	"fmt"
	"regexp"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// boolean operator keywords of the layer algebra
var exprOperators = map[string]bool{
	"AND": true,
	"OR":  true,
	"NOT": true,
}

// tokenizeExpression splits a layer expression into identifier, operator,
// and parenthesis tokens. Parentheses are their own tokens regardless of
// surrounding whitespace.
func tokenizeExpression(expr string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, expr[start:end])
			start = -1
		}
	}
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case ' ', '\t':
			flush(i)
		case '(', ')':
			flush(i)
			tokens = append(tokens, string(c))
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(expr))
	return tokens
}

// ValidateExpression checks a derived-layer expression for structural
// problems: unbalanced parentheses and tokens that are neither layer names
// nor the AND/OR/NOT operators. It does not resolve layer references;
// resolution happens after the whole deck is parsed, since forward
// references are allowed.
func ValidateExpression(expr string) error {
	tokens := tokenizeExpression(expr)
	if len(tokens) == 0 {
		return ErrEmptyExpression
	}
	depth := 0
	for _, tok := range tokens {
		switch {
		case tok == "(":
			depth++
		case tok == ")":
			depth--
			if depth < 0 {
				return ErrUnbalancedParens
			}
		case exprOperators[tok]:
			// operator keyword
		case identPattern.MatchString(tok):
			// layer name
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOperator, tok)
		}
	}
	if depth != 0 {
		return ErrUnbalancedParens
	}
	return nil
}

// expressionRefs returns the layer names referenced by an expression, in
// order of first appearance.
func expressionRefs(expr string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, tok := range tokenizeExpression(expr) {
		if tok == "(" || tok == ")" || exprOperators[tok] {
			continue
		}
		if identPattern.MatchString(tok) && !seen[tok] {
			seen[tok] = true
			refs = append(refs, tok)
		}
	}
	return refs
}
