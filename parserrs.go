package calc

import "strconv"

// OperatorError is an error indicating an operator token that is not valid
// in its position. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the parenthesis.
	Col int
	// Left is the opening parenthesis, if any.
	Left string
	// Right is the unmatched closing parenthesis, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating leftover input after a complete
// expression, e.g. two operands with no operator between them. It implements
// InputError.
type TrailingError struct {
	// Col is the position of the first leftover token.
	Col int
	// Token is the leftover token.
	Token string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token)+" after expression")
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// ArgumentError is an error indicating an argument list shape the grammar
// does not admit: an empty list or more than two arguments. It implements
// InputError.
type ArgumentError struct {
	// Col is the position of the token that revealed the bad shape.
	Col int
	// Func is the call target.
	Func string
	// Len is the number of arguments the call tried to imply.
	Len int
}

func (err *ArgumentError) Error() string {
	if err.Len == 0 {
		return errpos(err.Col, "empty argument list in call to "+err.Func)
	}
	return errpos(err.Col, "too many arguments in call to "+err.Func)
}

func (err *ArgumentError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of
	// the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*ArgumentError)(nil)
	_ InputError = (*LexError)(nil)
)
