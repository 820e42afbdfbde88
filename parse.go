package calc

import (
	"slices"
	"strconv"
	"strings"
)

// Expr     = Additive
// Additive = Multiplicative { ('+' | '-') Multiplicative }
// Multiplicative = Unary { ('*' | '/' | '//' | '%') Unary }
// Unary    = ('+' | '-') Unary | Power
// Power    = Postfix [ '**' Unary ]
// Postfix  = Primary [ '%' ]
// Primary  = num | name | name '(' Expr [ ',' Expr ] ')' | '(' Expr ')'
//
// Exponentiation binds tighter than a preceding unary operator but looser
// than a following one: "-2**2" is -(2**2) and "2**-2" is 2**(-2).

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of identifier names that have been seen this parse,
	// not counting call targets.
	names map[string]bool
}

// Parse parses an expression so it can be evaluated with a context. The
// input must be a single complete expression; anything left over after it
// is a syntax error.
func Parse(src string) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil || tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	slices.Sort(ex.names)
	return &ex, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenPercent:
			// Postfix percent binds tightest, so it always applies to the
			// term just parsed, which at this point is the number literal
			// the lexer classified it against.
			n = &node{kind: nodePercent, left: n}
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				scan.push(end)
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// An operand directly after a complete term. There is no
			// implicit multiplication in this grammar, so let the enclosing
			// end-of-expression check reject it.
			scan.push(tok)
			return n, nil
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text, val: numValue(tok.text)}
	case tokenIdent:
		nxt, err := scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen {
			// Call. The parser accepts any identifier as a call target;
			// whether it names a registered function and whether the
			// argument count matches its arity are evaluation concerns.
			return parsecall(scan, p, tok)
		}
		scan.push(nxt)
		p.names[tok.text] = true
		n = &node{kind: nodeName, name: tok.text}
	case tokenOp:
		// Unary operator.
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			scan.push(end)
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose, tokenSep:
		// This might close a bracket or separate call arguments; let the
		// caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the arguments to a call of the named target. The opening
// parenthesis is already consumed.
func parsecall(scan *lexer, p *parsectx, name lexToken) (*node, error) {
	var first, second *node
	for i := 0; ; i++ {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more
			// helpful than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, err
		}
		end := scan.must()
		if rhs == nil {
			if end.kind == tokenClose && i == 0 {
				return nil, &ArgumentError{Col: end.pos, Func: name.text, Len: 0}
			}
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		if i == 0 {
			first = rhs
		} else {
			second = rhs
		}
		switch end.kind {
		case tokenClose:
			return &node{kind: nodeCall, name: name.text, left: first, right: second}, nil
		case tokenSep:
			if i == 1 {
				return nil, &ArgumentError{Col: end.pos, Func: name.text, Len: 3}
			}
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
	}
}

// numValue converts a number literal to a Value. Literals with a fractional
// part or an exponent are Real; plain digit runs are Integer unless they
// overflow int64, in which case they fall back to Real.
func numValue(text string) Value {
	if strings.ContainsAny(text, ".eE") {
		f, _ := strconv.ParseFloat(text, 64)
		return Real(f)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(text, 64)
		return Real(f)
	}
	return Int(i)
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open indicates whether the expression
// was expected to end with a close parenthesis.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	switch tok.kind {
	case tokenEOF:
		if open {
			// Unexpected EOF implies a parenthesis that was not closed.
			return &BracketError{Col: tok.pos, Left: "(", Right: ""}
		}
		return &EmptyExpressionError{Col: tok.pos, End: ""}
	case tokenClose:
		if open {
			panic("calc: mismatched close parenthesis: " + tok.String())
		}
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenNum, tokenIdent, tokenOpen:
		return &TrailingError{Col: tok.pos, Token: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// parentheses grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "//":
		return operator{5, false, nodeFloorDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// powprec is the precedence of exponentiation.
	powprec = binop("**")
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
