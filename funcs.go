package calc

import (
	"math"
	"slices"
	"strconv"
)

// Func is a function from numbers to numbers available to call expressions.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true.
	Call(args []Value) (Value, error)

	// CanCall returns whether the function can be called with n arguments.
	// The evaluator rejects a call whose argument count CanCall denies.
	CanCall(n int) bool
}

// globalfuncs and globalconsts are the whitelist of identifiers an
// expression may call or reference beyond the caller's own bindings. They
// are initialized once and never mutated; Function and Constant are the
// only access paths.
var globalfuncs = map[string]Func{
	"sqrt": Checked("sqrt", math.Sqrt, func(x float64) bool { return x >= 0 }),
	"sin":  Monadic(math.Sin),
	"cos":  Monadic(math.Cos),
	"tan":  Monadic(math.Tan),
	"log":  Checked("log", math.Log10, func(x float64) bool { return x > 0 }),
	"ln":   Checked("ln", math.Log, func(x float64) bool { return x > 0 }),
}

var globalconsts = map[string]Value{
	"pi": Real(math.Pi),
	"e":  Real(math.E),
}

// Function returns the registered function with the given name.
func Function(name string) (Func, bool) {
	fn, ok := globalfuncs[name]
	return fn, ok
}

// Constant returns the built-in constant with the given name.
func Constant(name string) (Value, bool) {
	v, ok := globalconsts[name]
	return v, ok
}

// Funcs returns the names of the registered functions, sorted.
func Funcs() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Consts returns the names of the built-in constants, sorted.
func Consts() []string {
	names := make([]string, 0, len(globalconsts))
	for k := range globalconsts {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

type monadic struct {
	name string
	f    func(float64) float64
	ok   func(float64) bool
}

func (m monadic) Call(args []Value) (Value, error) {
	x := args[0].Float64()
	if m.ok != nil && !m.ok(x) {
		return Value{}, &DomainError{X: Real(x), Func: m.name}
	}
	return Real(m.f(x)), nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a total function of one variable into a Func. The result is
// always Real.
func Monadic(f func(float64) float64) Func {
	return monadic{f: f}
}

// Checked wraps a function of one variable whose domain is restricted to
// the arguments ok admits. Other arguments report a DomainError naming the
// function.
func Checked(name string, f func(float64) float64, ok func(float64) bool) Func {
	return monadic{name: name, f: f, ok: ok}
}

// DomainError is an error returned when a function or operator is applied
// to arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument, if relevant.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := Format(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
