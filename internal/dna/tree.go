package dna

import (
	"strconv"
	"strings"
)

// Node is one operator application in a condition or expression tree.
//
// Nullary nodes carry a payload in Constant (table index) or Symbol
// (variable). Depth is assigned by the decoder (root = 0) and is only
// meaningful on decoded trees and their clones.
type Node struct {
	Op       Operator
	Constant int
	Symbol   Symbol
	Left     *Node
	Right    *Node
	Depth    int
}

// Constant returns a constant leaf for table index i.
func Constant(i int) *Node { return &Node{Op: OpConstant, Constant: i} }

// Variable returns a variable leaf reading symbol s.
func Variable(s Symbol) *Node { return &Node{Op: OpVariable, Symbol: s} }

// True returns the true literal.
func True() *Node { return &Node{Op: OpTrue} }

// Not negates a boolean tree.
func Not(child *Node) *Node { return &Node{Op: OpNot, Left: child} }

// Binary applies a two-operand operator.
func Binary(op Operator, lhs, rhs *Node) *Node {
	return &Node{Op: op, Left: lhs, Right: rhs}
}

// Clone deep-copies the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Left = n.Left.Clone()
	c.Right = n.Right.Clone()
	return &c
}

// Size counts the nodes in the tree.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Size() + n.Right.Size()
}

// Postorder appends the nodes of the tree to dst, children before parents,
// left before right.
func (n *Node) Postorder(dst []*Node) []*Node {
	if n == nil {
		return dst
	}
	dst = n.Left.Postorder(dst)
	dst = n.Right.Postorder(dst)
	return append(dst, n)
}

func (n *Node) assignDepth(depth int) {
	if n == nil {
		return
	}
	n.Depth = depth
	n.Left.assignDepth(depth + 1)
	n.Right.assignDepth(depth + 1)
}

// Encode renders the tree as a postfix token stream.
func (n *Node) Encode() string {
	var sb strings.Builder
	n.encode(&sb)
	return sb.String()
}

func (n *Node) encode(sb *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Op {
	case OpConstant:
		sb.WriteByte(byte(OpConstant))
		sb.WriteByte(Alphabet[n.Constant&(ConstantCount-1)])
		return
	case OpVariable:
		sb.WriteByte(byte(OpVariable))
		sb.WriteByte(byte(n.Symbol))
		return
	}
	n.Left.encode(sb)
	n.Right.encode(sb)
	sb.WriteByte(byte(n.Op))
}

// String renders the tree in infix form, e.g. "(a + 0.5) > b".
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb, true)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder, top bool) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Op.Arity() {
	case 0:
		switch n.Op {
		case OpConstant:
			sb.WriteString(strconv.FormatFloat(ConstantValue(n.Constant), 'g', -1, 64))
		case OpVariable:
			sb.WriteByte(byte(n.Symbol))
		default:
			sb.WriteString(n.Op.String())
		}
	case 1:
		sb.WriteString(n.Op.String())
		sb.WriteByte(' ')
		n.Left.format(sb, false)
	default:
		if !top {
			sb.WriteByte('(')
		}
		n.Left.format(sb, false)
		sb.WriteByte(' ')
		sb.WriteString(n.Op.String())
		sb.WriteByte(' ')
		n.Right.format(sb, false)
		if !top {
			sb.WriteByte(')')
		}
	}
}
