// Package calculate implements an arbitrary-precision decimal calculator.
//
// Expressions are made of decimal literals such as 12, 0.25, or 1.5e-3, the
// operators + - * /, unary + and -, and parentheses. Numbers are exact decimal
// values from package decimal, so "0.1+0.2" is exactly 0.3. Only division can
// lose digits, and only when the quotient has no terminating expansion within
// the evaluation precision.
//
// Chains of operators of the same precedence group to the right: "1-2-3" is
// the same as "1-(2-3)", which is 2. Write the parentheses explicitly for the
// other grouping.
//
// Parse turns text into a tree of Nodes, and a Context evaluates a tree.
// EvalString does both at once. A Calculator additionally keeps a History of
// every input it has evaluated.
package calculate
