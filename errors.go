package calculator

import "strconv"

// ExpressionError indicates a structurally invalid expression: a token that
// cannot be classified, unmatched brackets, missing operands or operators,
// a misplaced assignment, or more than one assignment.
type ExpressionError struct {
	// Reason describes what was wrong. It is not part of the error message.
	Reason string
}

func (err *ExpressionError) Error() string {
	return "Invalid expression"
}

// UnknownVariableError is an error from a lookup for a variable that has not
// been assigned.
type UnknownVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnknownVariableError) Error() string {
	return "Unknown variable"
}

// Detail returns a message that includes the missing name.
func (err *UnknownVariableError) Detail() string {
	return "unknown variable " + strconv.Quote(err.Name)
}

// DivisionError indicates an integer division by zero.
type DivisionError struct {
	// Dividend is the value that was divided.
	Dividend string
}

func (err *DivisionError) Error() string {
	return "Division by zero"
}

// invalid is a shortcut to create an ExpressionError.
func invalid(reason string) error {
	return &ExpressionError{Reason: reason}
}
