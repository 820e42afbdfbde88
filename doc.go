// Package calc implements a sandboxed arithmetic expression calculator.
//
// The grammar is a fixed single-expression sublanguage: numbers,
// identifiers, the operators + - * / // % ** with Python-style precedence,
// a postfix percent operator ("50%" is 0.5), parentheses, and calls to a
// closed set of math functions. Nothing else parses, so nothing else can
// evaluate: there is no assignment, no attribute access, no indexing, and
// no way to reach names outside the caller's bindings and the built-in
// constants.
//
// Values carry either an integer or a real representation. Arithmetic
// follows Python semantics: / always yields a real, // and % are floored,
// and "-2**2" is -(2**2).
package calc
