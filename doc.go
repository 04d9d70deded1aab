// Package calculator implements an arbitrary-precision integer calculator
// with named variables.
//
// A line is split into tokens, each token is classified as a number, a
// variable, an operator, an assignment, or a bracket, and the tokens are
// rearranged into postfix order so that a Context can evaluate them with a
// stack. Runs of + and - fold into one operator, so "1 - - 2" is 3. Division
// truncates toward zero.
//
// A line may contain at most one assignment, as in "a = 2 * (b + 1)". The
// Context keeps assigned variables for later lines.
package calculator
