package calc

import "strconv"

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or real token.
	tokenNum
	// tokenIdent is a variable, constant, or function name.
	tokenIdent
	// tokenOp is a unary or binary operator.
	tokenOp
	// tokenPercent is the postfix percent operator, as distinguished from
	// the binary modulo operator.
	tokenPercent
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenPercent:
		return "Percent"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type lexer struct {
	src []rune
	off int
	p   lexToken
	// last is the kind of the most recently scanned token. A % directly
	// after a number token may be the postfix percent operator; in every
	// other position it is binary modulo.
	last tokenKind
	eof  bool
}

func lex(src string) *lexer {
	return &lexer{src: []rune(src)}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// next scans the next token from the input. The first time the end of the
// input is reached, the result is an EOF token with a nil error. Subsequent
// times, if the EOF token is not pushed, next panics.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		panic("calc: lex past EOF")
	}
	for l.off < len(l.src) && isSpace(l.src[l.off]) {
		l.off++
	}
	tok := lexToken{pos: l.off + 1}
	if l.off >= len(l.src) {
		tok.kind = tokenEOF
		l.eof = true
		l.last = tokenEOF
		return tok, nil
	}
	r := l.src[l.off]
	switch {
	case '0' <= r && r <= '9', r == '.':
		text, err := l.scanNum()
		if err != nil {
			return tok, err
		}
		tok.text = text
		tok.kind = tokenNum
	case isLetter(r):
		tok.text = l.scanIdent()
		tok.kind = tokenIdent
	case r == '(':
		l.off++
		tok.text = "("
		tok.kind = tokenOpen
	case r == ')':
		l.off++
		tok.text = ")"
		tok.kind = tokenClose
	case r == ',':
		l.off++
		tok.text = ","
		tok.kind = tokenSep
	case r == '%':
		l.off++
		tok.text = "%"
		if l.last == tokenNum && !l.operandAhead() {
			tok.kind = tokenPercent
		} else {
			tok.kind = tokenOp
		}
	case r == '*', r == '/':
		l.off++
		tok.text = string(r)
		if l.off < len(l.src) && l.src[l.off] == r {
			l.off++
			tok.text += string(r)
		}
		tok.kind = tokenOp
	case r == '+', r == '-':
		l.off++
		tok.text = string(r)
		tok.kind = tokenOp
	default:
		l.off++
		return tok, &LexError{Text: string(r), Col: tok.pos}
	}
	l.last = tok.kind
	return tok, nil
}

// operandAhead reports whether the next non-space rune begins an operand.
// A % followed by an operand is binary modulo rather than postfix percent.
func (l *lexer) operandAhead() bool {
	for i := l.off; i < len(l.src); i++ {
		r := l.src[i]
		if isSpace(r) {
			continue
		}
		return '0' <= r && r <= '9' || r == '.' || r == '(' || isLetter(r)
	}
	return false
}

// scanNum scans a decimal number with an optional fractional part and an
// optional exponent.
func (l *lexer) scanNum() (string, error) {
	start := l.off
	var dig, dot, e, le, ed bool
loop:
	for l.off < len(l.src) {
		r := l.src[l.off]
		switch {
		case '0' <= r && r <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case r == '.':
			if dot || e {
				l.off++
				return "", l.error("number", start)
			}
			dot = true
		case r == 'e' || r == 'E':
			if !dig || e {
				l.off++
				return "", l.error("number", start)
			}
			e, le = true, true
		case r == '+' || r == '-':
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				break loop
			}
			le = false
		case isLetter(r):
			l.off++
			return "", l.error("number", start)
		default:
			break loop
		}
		l.off++
	}
	if (!dig && !ed) || (e && !ed) {
		return "", l.error("number", start)
	}
	return string(l.src[start:l.off]), nil
}

// scanIdent scans an identifier: an ASCII letter followed by ASCII letters
// and digits.
func (l *lexer) scanIdent() string {
	start := l.off
	for l.off < len(l.src) {
		r := l.src[l.off]
		if !isLetter(r) && !('0' <= r && r <= '9') {
			break
		}
		l.off++
	}
	return string(l.src[start:l.off])
}

func (l *lexer) error(kind string, start int) error {
	end := l.off
	if end > len(l.src) {
		end = len(l.src)
	}
	return &LexError{
		Text: string(l.src[start:end]),
		Kind: kind,
		Col:  l.off,
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// LexError indicates an invalid character or malformed token in the input.
// It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "number" or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the rune column of the rune that caused the error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
