package dna

import "errors"

// ErrInvalidGenome matches every *InvalidGenomeError via errors.Is.
var ErrInvalidGenome = errors.New("invalid genome")

// Reasons carried by InvalidGenomeError. The strings are part of the
// compatibility surface and must not change.
const (
	ReasonNotBase64            = "not a base64 string"
	ReasonMissingHeader        = "missing header"
	ReasonUnexpectedVersion    = "unexpected version"
	ReasonMissingGenes         = "missing genes"
	ReasonGeneRunt             = "gene runt"
	ReasonInvalidLength        = "invalid length"
	ReasonGiantLength          = "giant length"
	ReasonGiantCondition       = "giant condition"
	ReasonMissingExpression    = "gene missing expression"
	ReasonConditionNotBoolean  = "condition must be boolean"
	ReasonExpressionNotNumeric = "expression must be arithmetic"
	ReasonArithmeticOnBoolean  = "arithmetic operators cannot operate on boolean trees"
	ReasonConnectiveOnNumeric  = "boolean connectives must operate on boolean trees"
	ReasonUnexpectedToken      = "unexpected token"
	ReasonUnexpectedOperator   = "unexpected operator"
	ReasonUnexpectedResults    = "unexpected parse results"
	ReasonUnknownVariable      = "unknown variable"
	ReasonUnknownConstant      = "unknown constant"
)

// InvalidGenomeError is the single error kind produced while decoding
// genomes, genes, trees and length prefixes.
type InvalidGenomeError struct {
	Reason string
}

func (e *InvalidGenomeError) Error() string {
	return "invalid genome: " + e.Reason
}

// Is reports whether target is ErrInvalidGenome.
func (e *InvalidGenomeError) Is(target error) bool {
	return target == ErrInvalidGenome
}

func invalid(reason string) error {
	return &InvalidGenomeError{Reason: reason}
}

// Reason extracts the reason from an InvalidGenomeError anywhere in err's
// chain. It returns "" for any other error.
func Reason(err error) string {
	var ige *InvalidGenomeError
	if errors.As(err, &ige) {
		return ige.Reason
	}
	return ""
}
