package svrf

import "errors"

var (
	// Expression validation errors
	ErrEmptyExpression  = errors.New("svrf: empty layer expression")
	ErrUnbalancedParens = errors.New("svrf: unbalanced parentheses in layer expression")
	ErrUnknownOperator  = errors.New("svrf: unknown operator token in layer expression")

	// Parser state errors
	ErrParserFinished = errors.New("svrf: parser already finished")
)
