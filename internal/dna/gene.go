package dna

import "strings"

// Gene is a guarded assignment: when Condition holds, Expression is written
// to the Output slot of the context.
type Gene struct {
	Output     Symbol
	Condition  *Node
	Expression *Node
}

// Clone deep-copies the gene and both of its trees.
func (g *Gene) Clone() *Gene {
	return &Gene{
		Output:     g.Output,
		Condition:  g.Condition.Clone(),
		Expression: g.Expression.Clone(),
	}
}

// Encode renders the gene as
//
//	lengthPrefix(body) body
//	body = output lengthPrefix(condition) condition expression
func (g *Gene) Encode() string {
	cond := g.Condition.Encode()
	expr := g.Expression.Encode()
	condPrefix := EncodeLength(len(cond))
	bodyLen := 1 + len(condPrefix) + len(cond) + len(expr)

	var sb strings.Builder
	sb.Grow(bodyLen + 2)
	sb.WriteString(EncodeLength(bodyLen))
	sb.WriteByte(byte(g.Output))
	sb.WriteString(condPrefix)
	sb.WriteString(cond)
	sb.WriteString(expr)
	return sb.String()
}

func (g *Gene) String() string {
	return "if " + g.Condition.String() + " then " + string(rune(g.Output)) + " = " + g.Expression.String()
}

// DecodeGene parses one encoded gene, including its outer length prefix.
// Characters past the declared gene length are ignored.
func DecodeGene(s string) (*Gene, error) {
	n, consumed, err := DecodeLength(s)
	if err != nil {
		return nil, err
	}
	if consumed+n > len(s) {
		return nil, invalid(ReasonGiantCondition)
	}
	body := s[consumed : consumed+n]
	if len(body) == 0 {
		return nil, invalid(ReasonMissingExpression)
	}

	if _, err := DecodeDigit(body[0]); err != nil {
		return nil, err
	}
	output := Symbol(body[0])
	if !IsVariable(output) {
		return nil, invalid(ReasonUnknownVariable)
	}

	condLen, condConsumed, err := DecodeLength(body[1:])
	if err != nil {
		return nil, err
	}
	start := 1 + condConsumed
	end := start + condLen
	if end > len(body) {
		return nil, invalid(ReasonGiantCondition)
	}
	if end == len(body) {
		return nil, invalid(ReasonMissingExpression)
	}

	cond, err := DecodeCondition(body[start:end])
	if err != nil {
		return nil, err
	}
	expr, err := DecodeExpression(body[end:])
	if err != nil {
		return nil, err
	}
	return &Gene{Output: output, Condition: cond, Expression: expr}, nil
}
