package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The kinds
// below are the only shapes a parse can produce; the evaluator matches them
// exhaustively and panics on anything else, so a construct with no node kind
// cannot evaluate.
type node struct {
	kind nodeKind

	// name is the identifier, the call target, or the number literal text.
	name string
	// val is the parsed literal value. Only nodeNum uses it.
	val Value

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push val
	nodeName // push lookup(name)

	nodeCall // name is the callee; left is the first argument, right the optional second

	nodeNop     // evaluate left
	nodeNeg     // evaluate left, then negate
	nodePercent // evaluate left, multiply by 0.01

	nodeAdd      // evaluate left, add right
	nodeSub      // evaluate left, sub right
	nodeMul      // evaluate left, mul right
	nodeDiv      // evaluate left, true-divide by right
	nodeFloorDiv // evaluate left, floor-divide by right
	nodeMod      // evaluate left, floored modulo by right
	nodePow      // evaluate left, exp by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodeNop:
		return "Nop"
	case nodeNeg:
		return "Neg"
	case nodePercent:
		return "Percent"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeFloorDiv:
		return "FloorDiv"
	case nodeMod:
		return "Mod"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		if n.right != nil {
			b.WriteString(", ")
			n.right.fmt(b)
		}
		b.WriteByte(')')
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodePercent:
		n.left.fmt(b)
		b.WriteByte('%')
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodeFloorDiv:
		n.left.fmt(b)
		b.WriteString(" // ")
		n.right.fmt(b)
	case nodeMod:
		n.left.fmt(b)
		b.WriteString(" % ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ** ")
		n.right.fmt(b)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
