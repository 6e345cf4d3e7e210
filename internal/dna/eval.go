package dna

import "maps"

// Context maps symbols to values. Evaluation reads and writes it.
type Context map[Symbol]float64

// Clone returns an independent copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	return out
}

// EvaluateExpression computes an arithmetic tree. Unset variables read as 0;
// division follows IEEE semantics.
func EvaluateExpression(n *Node, ctx Context) float64 {
	switch n.Op {
	case OpVariable:
		return ctx[n.Symbol]
	case OpConstant:
		return ConstantValue(n.Constant)
	case OpAdd:
		return EvaluateExpression(n.Left, ctx) + EvaluateExpression(n.Right, ctx)
	case OpSubtract:
		return EvaluateExpression(n.Left, ctx) - EvaluateExpression(n.Right, ctx)
	case OpMultiply:
		return EvaluateExpression(n.Left, ctx) * EvaluateExpression(n.Right, ctx)
	case OpDivide:
		return EvaluateExpression(n.Left, ctx) / EvaluateExpression(n.Right, ctx)
	}
	return 0
}

// EvaluateCondition computes a boolean tree.
func EvaluateCondition(n *Node, ctx Context) bool {
	switch n.Op {
	case OpTrue:
		return true
	case OpGreater:
		return EvaluateExpression(n.Left, ctx) > EvaluateExpression(n.Right, ctx)
	case OpLess:
		return EvaluateExpression(n.Left, ctx) < EvaluateExpression(n.Right, ctx)
	case OpAnd:
		return EvaluateCondition(n.Left, ctx) && EvaluateCondition(n.Right, ctx)
	case OpOr:
		return EvaluateCondition(n.Left, ctx) || EvaluateCondition(n.Right, ctx)
	case OpNot:
		return !EvaluateCondition(n.Left, ctx)
	}
	return false
}

// EvaluateGenes runs genes in order against a copy of input. Each gene sees
// the outputs written by the genes before it.
func EvaluateGenes(genes []*Gene, input Context) Context {
	output := input.Clone()
	for _, g := range genes {
		if EvaluateCondition(g.Condition, output) {
			output[g.Output] = EvaluateExpression(g.Expression, output)
		}
	}
	return output
}
