package calc_test

import (
	"fmt"

	"github.com/Natey17/calc"
)

func Example() {
	ctx := calc.NewContext(calc.SetVar("ans", calc.Real(4)))
	a, err := calc.Parse("ans + sqrt(9)")
	if err != nil {
		panic(err)
	}
	v, err := a.Eval(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Println(calc.Format(v))
	// Output: 7
}

func ExampleEvalString() {
	v, _ := calc.EvalString("200 + 50%")
	fmt.Println(calc.Format(v))
	// Output: 200.5
}

func ExampleExpr_Vars() {
	a, _ := calc.Parse("ans * (1 + rate)")
	fmt.Println(a.Vars())
	// Output: [ans rate]
}
