package dna

// ConstantCount is the size of the constant table, one alphabet digit.
const ConstantCount = 64

const (
	constantMin  = -4.0
	constantStep = 0.125
)

// constantTable holds -4.0, -3.875, ..., 3.875. Never mutated.
var constantTable = func() [ConstantCount]float64 {
	var t [ConstantCount]float64
	for i := range t {
		t[i] = constantMin + float64(i)*constantStep
	}
	return t
}()

// ConstantValue returns the table entry at index i. Out-of-range indexes
// read as zero; the decoder never produces them.
func ConstantValue(i int) float64 {
	if i < 0 || i >= ConstantCount {
		return 0
	}
	return constantTable[i]
}

// Symbol names a slot in an evaluation context.
type Symbol byte

// Variables is the legal variable/output symbol set.
const Variables = "abcdefghijklmnopqrstuvwxyz"

// IsVariable reports whether s is a legal variable symbol.
func IsVariable(s Symbol) bool {
	return s >= 'a' && s <= 'z'
}

func (s Symbol) String() string {
	return string(rune(s))
}
