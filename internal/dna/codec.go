package dna

import "genelab/internal/logging"

// DecodeCondition parses a postfix token stream whose root must be boolean.
func DecodeCondition(s string) (*Node, error) {
	root, err := decodeTree(s)
	if err != nil {
		return nil, err
	}
	if !root.Op.IsBoolean() {
		return nil, invalid(ReasonConditionNotBoolean)
	}
	return root, nil
}

// DecodeExpression parses a postfix token stream whose root must be
// arithmetic.
func DecodeExpression(s string) (*Node, error) {
	root, err := decodeTree(s)
	if err != nil {
		return nil, err
	}
	if !root.Op.IsArithmetic() {
		return nil, invalid(ReasonExpressionNotNumeric)
	}
	return root, nil
}

// decodeTree runs the operand-stack parser over s and assigns depths to the
// resulting tree. Operand classes are checked as each operator is reduced.
func decodeTree(s string) (*Node, error) {
	stack := make([]*Node, 0, 8)
	pop := func() *Node {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for i := 0; i < len(s); i++ {
		op := Operator(s[i])
		switch op {
		case OpConstant:
			if i+1 >= len(s) {
				return nil, invalid(ReasonUnexpectedToken)
			}
			i++
			idx, err := DecodeDigit(s[i])
			if err != nil {
				return nil, err
			}
			if idx >= ConstantCount {
				return nil, invalid(ReasonUnknownConstant)
			}
			stack = append(stack, Constant(idx))

		case OpVariable:
			if i+1 >= len(s) {
				return nil, invalid(ReasonUnexpectedToken)
			}
			i++
			if _, err := DecodeDigit(s[i]); err != nil {
				return nil, err
			}
			sym := Symbol(s[i])
			if !IsVariable(sym) {
				return nil, invalid(ReasonUnknownVariable)
			}
			stack = append(stack, Variable(sym))

		case OpTrue:
			stack = append(stack, True())

		case OpNot:
			if len(stack) < 1 {
				return nil, invalid(ReasonUnexpectedOperator)
			}
			child := pop()
			if err := checkOperand(op, child); err != nil {
				return nil, err
			}
			stack = append(stack, Not(child))

		case OpGreater, OpLess, OpAnd, OpOr, OpAdd, OpSubtract, OpMultiply, OpDivide:
			if len(stack) < 2 {
				return nil, invalid(ReasonUnexpectedOperator)
			}
			rhs := pop()
			lhs := pop()
			if err := checkOperand(op, lhs); err != nil {
				return nil, err
			}
			if err := checkOperand(op, rhs); err != nil {
				return nil, err
			}
			stack = append(stack, Binary(op, lhs, rhs))

		default:
			logging.CodecDebug("unexpected token %q at %d", s[i], i)
			return nil, invalid(ReasonUnexpectedToken)
		}
	}

	if len(stack) != 1 {
		return nil, invalid(ReasonUnexpectedResults)
	}
	root := stack[0]
	root.assignDepth(0)
	return root, nil
}

// checkOperand enforces the class of a child tree under op.
func checkOperand(op Operator, operand *Node) error {
	if op.OperandClass() == ClassBoolean {
		if !operand.Op.IsBoolean() {
			return invalid(ReasonConnectiveOnNumeric)
		}
		return nil
	}
	if operand.Op.IsBoolean() {
		return invalid(ReasonArithmeticOnBoolean)
	}
	return nil
}
