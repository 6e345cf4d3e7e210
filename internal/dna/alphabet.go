// Package dna implements the textual genetic encoding: the 64-symbol digit
// alphabet, self-delimiting length prefixes, typed condition/expression
// trees in postfix form, genes, and the tree evaluator.
package dna

import "strings"

// Alphabet is the ordered 64-symbol digit alphabet. A symbol's position is
// its value.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Zero is the digit with value 0.
const Zero = '0'

const digitBits = 6

var digitValues = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// DecodeDigit returns the value of a single alphabet symbol.
func DecodeDigit(c byte) (int, error) {
	v := digitValues[c]
	if v < 0 {
		return 0, invalid(ReasonNotBase64)
	}
	return int(v), nil
}

// EncodeDigits renders value in the alphabet, most significant digit first,
// left-padded with Zero to minLength. The value is treated as an unsigned
// 32-bit accumulator so negative inputs wrap.
func EncodeDigits(value int, minLength int) string {
	v := uint32(value)
	var buf [6]byte // ceil(32/6)
	i := len(buf)
	for v != 0 {
		i--
		buf[i] = Alphabet[v&(1<<digitBits-1)]
		v >>= digitBits
	}
	digits := string(buf[i:])
	if pad := minLength - len(digits); pad > 0 {
		return strings.Repeat(string(Zero), pad) + digits
	}
	return digits
}

// Validate checks that every character of s belongs to the alphabet.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if digitValues[s[i]] < 0 {
			return invalid(ReasonNotBase64)
		}
	}
	return nil
}
