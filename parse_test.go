package calc

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.name != m.name || n.val != m.val {
			return n, m
		}
	case nodeName:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name {
			return n, m
		}
		fallthrough
	case nodeNop, nodeNeg, nodePercent, nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOperatorTable(t *testing.T) {
	for _, s := range []string{"+", "-", "*", "/", "//", "%", "**"} {
		if binop(s).op == nodeNone {
			t.Errorf("no binary operator for %q", s)
		}
	}
	for _, s := range []string{"+", "-"} {
		if unop(s).op == nodeNone {
			t.Errorf("no unary operator for %q", s)
		}
	}
	if !powprec.right {
		t.Error("** must be right-associative")
	}
	if !powprec.moreBinding(unop("-")) {
		t.Error("** must bind tighter than a preceding unary operator")
	}
	if !unop("-").moreBinding(binop("*")) {
		t.Error("unary operators must bind tighter than multiplicative ones")
	}
	if !binop("*").moreBinding(binop("+")) {
		t.Error("multiplicative operators must bind tighter than additive ones")
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "(((x)))", "x"},
		{"whitespace", "2 + 3", "2+3"},

		{"plus", "+x", "(+x)"},
		{"neg", "-x", "(-x)"},
		{"negneg", "--x", "-(-x)"},

		{"prec-mul", "2+3*4", "2+(3*4)"},
		{"prec-div", "2-3/4", "2-(3/4)"},
		{"prec-floordiv", "2+3//4", "2+(3//4)"},
		{"prec-mod", "2+3%4", "2+(3%4)"},
		{"add-left", "1-2-3", "(1-2)-3"},
		{"mul-left", "4/5/6", "(4/5)/6"},
		{"floor-left", "9//2//2", "(9//2)//2"},

		{"pow-right", "2**3**2", "2**(3**2)"},
		{"neg-pow", "-2**2", "-(2**2)"},
		{"pow-neg", "2**-2", "2**(-2)"},
		{"neg-mod", "-7%2", "(-7)%2"},
		{"neg-floordiv", "-7//2", "(-7)//2"},
		{"pow-mul", "2*3**2", "2*(3**2)"},

		{"percent", "200+50%", "200+(50%)"},
		{"percent-mul", "2*50%", "2*(50%)"},
		{"percent-pow", "50%**2", "(50%)**2"},
		{"percent-neg", "-50%", "-(50%)"},

		{"call-ws", "sqrt (9)", "sqrt(9)"},
		{"call-arg", "sqrt(2+3)", "sqrt((2+3))"},
		{"call-two", "log(8, 2)", "log(8,2)"},
		{"call-nested", "sqrt(sqrt(16))", "sqrt( sqrt( 16 ) )"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, err := Parse(c.a)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.a, err)
			}
			y, err := Parse(c.b)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.b, err)
			}
			if d, e := x.n.diff(y.n); d != nil || e != nil {
				t.Errorf("parse trees differ:\n%q = %v\n%q = %v\nfirst difference:\n%s vs %s",
					c.a, x, c.b, y, spew.Sdump(d), spew.Sdump(e))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		as   interface{}
	}{
		{"empty", "", new(*EmptyExpressionError)},
		{"spaces", "  \t ", new(*EmptyExpressionError)},
		{"empty-parens", "()", new(*EmptyExpressionError)},
		{"dangling-add", "1+", new(*EmptyExpressionError)},
		{"dangling-pow", "2**", new(*EmptyExpressionError)},
		{"dangling-inner", "(1+)", new(*EmptyExpressionError)},
		{"trailing-comma", "sqrt(1,)", new(*EmptyExpressionError)},

		{"open", "(", new(*BracketError)},
		{"unclosed", "(1+2", new(*BracketError)},
		{"close", ")", new(*BracketError)},
		{"extra-close", "1)", new(*BracketError)},
		{"unclosed-call", "sqrt(9", new(*BracketError)},
		{"open-call", "sqrt(", new(*BracketError)},

		{"adjacent-nums", "1 2", new(*TrailingError)},
		{"adjacent-ident", "2 x", new(*TrailingError)},
		{"adjacent-paren", "2(3)", new(*TrailingError)},

		{"double-op", "1*/2", new(*OperatorError)},
		{"binary-only", "1 // // 2", new(*OperatorError)},

		{"bare-comma", ",", new(*SeparatorError)},
		{"top-comma", "1,2", new(*SeparatorError)},

		{"empty-args", "sqrt()", new(*ArgumentError)},
		{"three-args", "sqrt(1,2,3)", new(*ArgumentError)},

		{"assign", "x = 1", new(*LexError)},
		{"attribute", "x.y", new(*LexError)},
		{"index", "a[0]", new(*LexError)},
		{"statements", "1; 2", new(*LexError)},
		{"string", `"abc"`, new(*LexError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v without error", c.src, a)
			}
			if !errors.As(err, c.as) {
				t.Errorf("%q gave %#v, not %T", c.src, err, c.as)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q gave %#v, which is not an InputError", c.src, err)
			}
			if ie.Pos() < 1 {
				t.Errorf("%q gave error at impossible position %d", c.src, ie.Pos())
			}
		})
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []string{"x"}},
		{"ans", "ans+1", []string{"ans"}},
		{"call-target-excluded", "sqrt(x)", []string{"x"}},
		{"consts-included", "x+pi*y", []string{"pi", "x", "y"}},
		{"sort", "z+y+x+w+v+u+t+s+r+q+p+o+n+m+l+k+j+i+h+g+f+d+c+b+a", []string{"a", "b", "c", "d", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z"}},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := a.Vars()
			if !reflect.DeepEqual(vars, c.vars) {
				t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2+3*4", "((2) + ((3) * (4)))"},
		{"-2**2", "(-((2) ** (2)))"},
		{"50%", "((50)%)"},
		{"sqrt(9)", "(sqrt((9)))"},
		{"log(8, 2)", "(log((8), (2)))"},
	}
	for _, c := range cases {
		a, err := Parse(c.src)
		if err != nil {
			t.Fatalf("%q didn't parse: %v", c.src, err)
		}
		if got := a.String(); got != c.want {
			t.Errorf("%q renders %q, want %q", c.src, got, c.want)
		}
	}
}
