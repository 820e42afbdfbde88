package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Natey17/calc"
)

func main() {
	log.SetFlags(0)
	var (
		expr string
		echo bool
	)
	ctx := calc.NewContext()
	flag.StringVar(&expr, "e", "", "evaluate a single expression and exit")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Func("given", `"name=value" variable definition (any number of times)`, func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		v, err := calc.EvalString(strings.TrimSpace(d[1]))
		if err != nil {
			return fmt.Errorf("setting %s: %w", strings.TrimSpace(d[0]), err)
		}
		ctx.Set(strings.TrimSpace(d[0]), v)
		return nil
	})
	flag.Parse()

	if expr != "" {
		v, err := eval(ctx, expr, echo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(calc.Format(v))
		return
	}
	repl(ctx, echo)
}

func eval(ctx *calc.Context, src string, echo bool) (calc.Value, error) {
	a, err := calc.Parse(src)
	if err != nil {
		return calc.Value{}, err
	}
	if echo {
		fmt.Printf("%v : ", a)
	}
	return a.Eval(ctx)
}

func repl(ctx *calc.Context, echo bool) {
	fmt.Printf("Calc REPL. Ops: + - * / // %% **, funcs: %s, consts: %s, var: ans\n",
		strings.Join(calc.Funcs(), " "), strings.Join(calc.Consts(), " "))
	fmt.Println("Ctrl+C or Ctrl+D to exit.")
	ctx.Set("ans", calc.Real(0))
	scan := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		v, err := eval(ctx, line, echo)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			// The previous answer is always bound as a Real, like the
			// result of any chained operation on it would be.
			ctx.Set("ans", calc.Real(v.Float64()))
			fmt.Println(calc.Format(v))
		}
		fmt.Print("> ")
	}
	if err := scan.Err(); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
}
