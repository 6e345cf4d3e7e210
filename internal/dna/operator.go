package dna

// Operator is a tree node tag. Its value is the marker symbol that
// terminates the node in the postfix encoding.
type Operator byte

const (
	OpGreater  Operator = 'G'
	OpLess     Operator = 'L'
	OpAnd      Operator = 'A'
	OpOr       Operator = 'O'
	OpNot      Operator = 'N'
	OpTrue     Operator = 'T'
	OpVariable Operator = 'V'
	OpConstant Operator = 'C'
	OpAdd      Operator = 'P'
	OpSubtract Operator = 'S'
	OpMultiply Operator = 'M'
	OpDivide   Operator = 'D'
)

// Class is the type of value a tree produces.
type Class int

const (
	ClassArithmetic Class = iota
	ClassBoolean
)

func (c Class) String() string {
	if c == ClassBoolean {
		return "boolean"
	}
	return "arithmetic"
}

// Operator sets used by random generation. Order is significant: selectors
// index into these slices.
var (
	ArithmeticLeaves   = []Operator{OpConstant, OpVariable}
	BooleanLeaves      = []Operator{OpTrue}
	ArithmeticBranches = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}
	BooleanBranches    = []Operator{OpAnd, OpOr, OpNot, OpGreater, OpLess}
)

// swap groups: operators interchangeable without retyping any operand.
var (
	arithmeticGroup = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}
	connectiveGroup = []Operator{OpAnd, OpOr}
	comparisonGroup = []Operator{OpGreater, OpLess}
)

// Valid reports whether op is one of the twelve markers.
func (op Operator) Valid() bool {
	switch op {
	case OpGreater, OpLess, OpAnd, OpOr, OpNot, OpTrue,
		OpVariable, OpConstant, OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Arity is the number of child trees op takes.
func (op Operator) Arity() int {
	switch op {
	case OpConstant, OpVariable, OpTrue:
		return 0
	case OpNot:
		return 1
	default:
		return 2
	}
}

// IsArithmetic reports whether op produces a number.
func (op Operator) IsArithmetic() bool {
	switch op {
	case OpVariable, OpConstant, OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// IsConnective reports whether op combines boolean operands.
func (op Operator) IsConnective() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

// IsComparison reports whether op produces a boolean from arithmetic
// operands (the true literal belongs here as well).
func (op Operator) IsComparison() bool {
	return op == OpGreater || op == OpLess || op == OpTrue
}

// IsBoolean reports whether op produces a boolean.
func (op Operator) IsBoolean() bool {
	return op.IsConnective() || op.IsComparison()
}

// Class returns the class of value op produces.
func (op Operator) Class() Class {
	if op.IsBoolean() {
		return ClassBoolean
	}
	return ClassArithmetic
}

// OperandClass is the class every child of op must have.
func (op Operator) OperandClass() Class {
	if op.IsConnective() {
		return ClassBoolean
	}
	return ClassArithmetic
}

// Alternatives returns the operators op may be swapped with: same arity,
// same class and same operand class, excluding op itself. Leaves have none;
// constants and variables are never interchanged.
func (op Operator) Alternatives() []Operator {
	var group []Operator
	switch {
	case op.IsArithmetic() && op.Arity() == 2:
		group = arithmeticGroup
	case op == OpAnd || op == OpOr:
		group = connectiveGroup
	case op == OpGreater || op == OpLess:
		group = comparisonGroup
	default:
		return nil
	}
	alts := make([]Operator, 0, len(group)-1)
	for _, g := range group {
		if g != op {
			alts = append(alts, g)
		}
	}
	return alts
}

func (op Operator) String() string {
	switch op {
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpTrue:
		return "true"
	case OpVariable:
		return "var"
	case OpConstant:
		return "const"
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return "?" + string(rune(op))
}
