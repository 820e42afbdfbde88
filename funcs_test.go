package calc_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/Natey17/calc"
)

func TestRegistry(t *testing.T) {
	if want := []string{"cos", "ln", "log", "sin", "sqrt", "tan"}; !reflect.DeepEqual(calc.Funcs(), want) {
		t.Errorf("wrong function registry: want %q, got %q", want, calc.Funcs())
	}
	if want := []string{"e", "pi"}; !reflect.DeepEqual(calc.Consts(), want) {
		t.Errorf("wrong constant registry: want %q, got %q", want, calc.Consts())
	}
	for _, name := range calc.Funcs() {
		fn, ok := calc.Function(name)
		if !ok {
			t.Fatalf("%s is listed but not registered", name)
		}
		if !fn.CanCall(1) {
			t.Errorf("%s must accept one argument", name)
		}
		for _, n := range []int{0, 2, 3} {
			if fn.CanCall(n) {
				t.Errorf("%s must not accept %d arguments", name, n)
			}
		}
	}
	if _, ok := calc.Function("eval"); ok {
		t.Error("registry contains an unregistered name")
	}
	if _, ok := calc.Constant("ans"); ok {
		t.Error("ans is caller state, not a built-in constant")
	}
}

func TestConstants(t *testing.T) {
	pi, ok := calc.Constant("pi")
	if !ok || !pi.IsReal() || pi.Float64() != math.Pi {
		t.Errorf("pi = %v, %v", pi, ok)
	}
	e, ok := calc.Constant("e")
	if !ok || !e.IsReal() || e.Float64() != math.E {
		t.Errorf("e = %v, %v", e, ok)
	}
}

func TestFuncResults(t *testing.T) {
	cases := []struct {
		name string
		arg  float64
		want float64
	}{
		{"sqrt", 2.25, 1.5},
		{"sin", math.Pi / 2, 1},
		{"cos", 0, 1},
		{"tan", 0, 0},
		{"log", 100, 2},
		{"ln", math.E, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, ok := calc.Function(c.name)
			if !ok {
				t.Fatalf("%s is not registered", c.name)
			}
			v, err := fn.Call([]calc.Value{calc.Real(c.arg)})
			if err != nil {
				t.Fatal(err)
			}
			if !v.IsReal() {
				t.Errorf("%s(%g) is not Real", c.name, c.arg)
			}
			if got := v.Float64(); math.Abs(got-c.want) > 1e-12 {
				t.Errorf("%s(%g) = %g, want %g", c.name, c.arg, got, c.want)
			}
		})
	}
}
