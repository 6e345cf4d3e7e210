package dna

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCondition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Node
	}{
		{"true literal", "T", True()},
		{"comparison", "VaC0G", Binary(OpGreater, Variable('a'), Constant(0))},
		{"less than", "C1VbL", Binary(OpLess, Constant(1), Variable('b'))},
		{"and", "TTA", Binary(OpAnd, True(), True())},
		{"or of not", "TNTO", Binary(OpOr, Not(True()), True())},
		{"nested", "VaVbGTNA", Binary(OpAnd, Binary(OpGreater, Variable('a'), Variable('b')), Not(True()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCondition(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmp.FilterPath(isDepth, cmp.Ignore())); diff != "" {
				t.Errorf("DecodeCondition(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.Equal(t, tt.input, got.Encode())
		})
	}
}

func TestDecodeExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Node
	}{
		{"constant", "C0", Constant(0)},
		{"last constant", "C_", Constant(63)},
		{"variable", "Vz", Variable('z')},
		{"sum", "VaC1P", Binary(OpAdd, Variable('a'), Constant(1))},
		{"operand order", "VaVbS", Binary(OpSubtract, Variable('a'), Variable('b'))},
		{"nested", "VaC1PC2M", Binary(OpMultiply, Binary(OpAdd, Variable('a'), Constant(1)), Constant(2))},
		{"divide", "C9VcD", Binary(OpDivide, Constant(9), Variable('c'))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeExpression(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmp.FilterPath(isDepth, cmp.Ignore())); diff != "" {
				t.Errorf("DecodeExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.Equal(t, tt.input, got.Encode())
		})
	}
}

func TestDecode_AssignsDepth(t *testing.T) {
	root, err := DecodeExpression("VaC1PC2M")
	require.NoError(t, err)

	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, 1, root.Left.Depth)
	assert.Equal(t, 2, root.Left.Left.Depth)
	assert.Equal(t, 2, root.Left.Right.Depth)
	assert.Equal(t, 1, root.Right.Depth)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		condition bool
		reason    string
	}{
		{"empty", "", true, ReasonUnexpectedResults},
		{"leftover operands", "TT", true, ReasonUnexpectedResults},
		{"binary without operands", "P", false, ReasonUnexpectedOperator},
		{"binary with one operand", "C0P", false, ReasonUnexpectedOperator},
		{"not without operand", "N", true, ReasonUnexpectedOperator},
		{"unknown marker", "Tx", true, ReasonUnexpectedToken},
		{"foreign character", "T!", true, ReasonUnexpectedToken},
		{"constant missing digit", "C", false, ReasonUnexpectedToken},
		{"variable missing symbol", "V", false, ReasonUnexpectedToken},
		{"variable outside range", "V0", false, ReasonUnknownVariable},
		{"constant outside alphabet", "C!", false, ReasonNotBase64},
		{"not over arithmetic", "VaN", true, ReasonConnectiveOnNumeric},
		{"and over arithmetic", "TVaA", true, ReasonConnectiveOnNumeric},
		{"add over boolean", "TC0P", false, ReasonArithmeticOnBoolean},
		{"compare boolean", "TC0G", true, ReasonArithmeticOnBoolean},
		{"condition is arithmetic", "C0", true, ReasonConditionNotBoolean},
		{"expression is boolean", "T", false, ReasonExpressionNotNumeric},
		{"expression is comparison", "VaVbL", false, ReasonExpressionNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.condition {
				_, err = DecodeCondition(tt.input)
			} else {
				_, err = DecodeExpression(tt.input)
			}
			require.ErrorIs(t, err, ErrInvalidGenome)
			assert.Equal(t, tt.reason, Reason(err))
		})
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	orig, err := DecodeExpression("VaC1P")
	require.NoError(t, err)

	c := orig.Clone()
	c.Left.Symbol = 'q'
	c.Op = OpMultiply

	assert.Equal(t, "VaC1P", orig.Encode())
	assert.Equal(t, "VqC1M", c.Encode())
	assert.Equal(t, 3, c.Size())
}

func TestNode_Postorder(t *testing.T) {
	root, err := DecodeCondition("VaC0GTNA")
	require.NoError(t, err)

	var ops []Operator
	for _, n := range root.Postorder(nil) {
		ops = append(ops, n.Op)
	}
	assert.Equal(t, []Operator{OpVariable, OpConstant, OpGreater, OpTrue, OpNot, OpAnd}, ops)
}

func TestNode_String(t *testing.T) {
	root, err := DecodeCondition("VaC0GTNA")
	require.NoError(t, err)
	assert.Equal(t, "(a > -4) and not true", root.String())
}

func TestOperator_Alternatives(t *testing.T) {
	assert.Equal(t, []Operator{OpSubtract, OpMultiply, OpDivide}, OpAdd.Alternatives())
	assert.Equal(t, []Operator{OpOr}, OpAnd.Alternatives())
	assert.Equal(t, []Operator{OpGreater}, OpLess.Alternatives())
	assert.Empty(t, OpNot.Alternatives())
	assert.Empty(t, OpConstant.Alternatives())
	assert.Empty(t, OpVariable.Alternatives())
	assert.Empty(t, OpTrue.Alternatives())
}

func TestOperator_Classes(t *testing.T) {
	for _, op := range ArithmeticLeaves {
		assert.Equal(t, 0, op.Arity())
		assert.Equal(t, ClassArithmetic, op.Class())
	}
	for _, op := range ArithmeticBranches {
		assert.Equal(t, 2, op.Arity())
		assert.Equal(t, ClassArithmetic, op.OperandClass())
	}
	assert.Equal(t, ClassBoolean, OpTrue.Class())
	assert.Equal(t, 1, OpNot.Arity())
	assert.Equal(t, ClassBoolean, OpNot.OperandClass())
	assert.Equal(t, ClassArithmetic, OpGreater.OperandClass())
	assert.False(t, Operator('x').Valid())
}

func isDepth(p cmp.Path) bool {
	sf, ok := p.Last().(cmp.StructField)
	return ok && sf.Name() == "Depth"
}
