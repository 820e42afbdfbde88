package calc

import (
	"math"
	"strconv"
)

// Context carries the variable bindings used to resolve identifiers during
// evaluation. The context is read-only during evaluation, so one context may
// serve any number of concurrent Eval calls as long as no goroutine calls
// Set at the same time.
type Context struct {
	names map[string]Value
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt map[string]Value
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val Value) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]Value) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{names: make(map[string]Value)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			ctx.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				ctx.names[k] = v
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &ctx
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value Value) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether the context defines it.
// Built-in constants are not part of the context; see Constant.
func (ctx *Context) Lookup(name string) (Value, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := NewContext(opts...)
	for k, v := range ctx.names {
		if _, ok := n.names[k]; !ok {
			n.names[k] = v
		}
	}
	return n
}

// Eval evaluates the expression using ctx's bindings and returns the
// result. Evaluation never modifies the expression or the context; a nil
// ctx is an empty one.
func (e *Expr) Eval(ctx *Context) (Value, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	return e.n.eval(ctx)
}

// eval computes the node's value. The switch is exhaustive over the node
// kinds the parser can produce; any other kind is unreachable and panics.
func (n *node) eval(ctx *Context) (Value, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		if v, ok := ctx.names[n.name]; ok {
			return v, nil
		}
		if v, ok := Constant(n.name); ok {
			return v, nil
		}
		return Value{}, &NameError{Name: n.name}
	case nodeCall:
		fn, ok := Function(n.name)
		if !ok {
			return Value{}, &FuncError{Name: n.name}
		}
		args := make([]Value, 0, 2)
		for _, a := range []*node{n.left, n.right} {
			if a == nil {
				break
			}
			v, err := a.eval(ctx)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		if !fn.CanCall(len(args)) {
			return Value{}, &CallError{Func: n.name, Len: len(args)}
		}
		return fn.Call(args)
	case nodeNop:
		return n.left.eval(ctx)
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		if v.real {
			return Real(-v.f), nil
		}
		if v.i == math.MinInt64 {
			return Real(-v.Float64()), nil
		}
		return Int(-v.i), nil
	case nodePercent:
		v, err := n.left.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return Real(v.Float64() * 0.01), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return arith(n.kind, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// arith applies a binary arithmetic operator with the promotion rules: add,
// sub, and mul stay Integer on Integer operands; true division is always
// Real; floor division and modulo are floored, so the result sign follows
// the divisor; exponentiation stays Integer only for an Integer base with a
// non-negative Integer exponent that does not overflow.
func arith(op nodeKind, l, r Value) (Value, error) {
	switch op {
	case nodeAdd:
		if !l.real && !r.real {
			s := l.i + r.i
			if (l.i >= 0) != (r.i >= 0) || (s >= 0) == (l.i >= 0) {
				return Int(s), nil
			}
			// Overflowed int64; promote to Real.
		}
		return Real(l.Float64() + r.Float64()), nil
	case nodeSub:
		if !l.real && !r.real {
			d := l.i - r.i
			if (l.i >= 0) == (r.i >= 0) || (d >= 0) == (l.i >= 0) {
				return Int(d), nil
			}
		}
		return Real(l.Float64() - r.Float64()), nil
	case nodeMul:
		if !l.real && !r.real {
			if p, ok := mul64(l.i, r.i); ok {
				return Int(p), nil
			}
		}
		return Real(l.Float64() * r.Float64()), nil
	case nodeDiv:
		if r.Float64() == 0 {
			return Value{}, &DomainError{X: r, Func: "/"}
		}
		return Real(l.Float64() / r.Float64()), nil
	case nodeFloorDiv:
		if !l.real && !r.real {
			if r.i == 0 {
				return Value{}, &DomainError{X: r, Func: "//"}
			}
			if l.i == math.MinInt64 && r.i == -1 {
				// Overflowed int64; promote to Real.
				return Real(math.Floor(l.Float64() / r.Float64())), nil
			}
			q := l.i / r.i
			if l.i%r.i != 0 && (l.i < 0) != (r.i < 0) {
				q--
			}
			return Int(q), nil
		}
		if r.Float64() == 0 {
			return Value{}, &DomainError{X: r, Func: "//"}
		}
		return Real(math.Floor(l.Float64() / r.Float64())), nil
	case nodeMod:
		if !l.real && !r.real {
			if r.i == 0 {
				return Value{}, &DomainError{X: r, Func: "%"}
			}
			m := l.i % r.i
			if m != 0 && (m < 0) != (r.i < 0) {
				m += r.i
			}
			return Int(m), nil
		}
		rf := r.Float64()
		if rf == 0 {
			return Value{}, &DomainError{X: r, Func: "%"}
		}
		m := math.Mod(l.Float64(), rf)
		if m != 0 && (m < 0) != (rf < 0) {
			m += rf
		}
		return Real(m), nil
	case nodePow:
		return pow(l, r)
	default:
		panic("calc: invalid arithmetic operator " + op.String())
	}
}

func pow(l, r Value) (Value, error) {
	if !l.real && !r.real && r.i >= 0 {
		if p, ok := ipow(l.i, r.i); ok {
			return Int(p), nil
		}
		// Overflowed int64; promote to Real.
	}
	lf, rf := l.Float64(), r.Float64()
	switch {
	case lf == 0 && rf < 0:
		return Value{}, &DomainError{X: r, Func: "**"}
	case lf < 0 && rf != math.Trunc(rf):
		// No complex results.
		return Value{}, &DomainError{X: l, Func: "**"}
	}
	return Real(math.Pow(lf, rf)), nil
}

// ipow computes base**exp in int64 arithmetic for exp >= 0. ok is false if
// any step overflows.
func ipow(base, exp int64) (r int64, ok bool) {
	r = 1
	b := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			r, ok = mul64(r, b)
			if !ok {
				return 0, false
			}
		}
		if e > 1 {
			b, ok = mul64(b, b)
			if !ok {
				return 0, false
			}
		}
	}
	return r, true
}

// mul64 multiplies with overflow detection.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		// Every product involving MinInt64 overflows except by 1, and
		// MinInt64 / -1 wraps, which defeats the quotient check below.
		if a == 1 {
			return b, true
		}
		if b == 1 {
			return a, true
		}
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (Value, error) {
	a, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return a.Eval(NewContext(opts...))
}

// NameError is an error from a lookup for a variable that is missing from
// both the evaluation context and the built-in constants.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// FuncError is an error from a call to a name that is not in the function
// registry.
type FuncError struct {
	// Name is the call target.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// CallError is an error from a call with an argument count that does not
// match the function's arity.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *CallError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
}
