package dna

import "strings"

// MaxLengthExtensions bounds the number of leading Zero digits a length
// prefix may carry.
const MaxLengthExtensions = 10

// lengthRadix is the payload range of one terminal digit once the Zero
// digit is reserved as the extension marker.
const lengthRadix = 63

// EncodeLength renders n as a self-delimiting length prefix: n/63 Zero
// digits followed by one terminal digit. When extensions are present the
// terminal value is shifted up by one so it can never be Zero.
//
// Lengths are always positive in genome framing; n == 0 encodes to a lone
// Zero digit, which DecodeLength reads as an unterminated prefix.
func EncodeLength(n int) string {
	extensions := n / lengthRadix
	value := n % lengthRadix
	if extensions > 0 {
		value++
	}
	var sb strings.Builder
	sb.Grow(extensions + 1)
	for i := 0; i < extensions; i++ {
		sb.WriteByte(Zero)
	}
	sb.WriteString(EncodeDigits(value, 1))
	return sb.String()
}

// DecodeLength reads a length prefix from the start of s and returns the
// length and the number of characters the prefix occupied.
func DecodeLength(s string) (length int, consumed int, err error) {
	end := 0
	for end < len(s) && s[end] == Zero {
		end++
	}
	if end > MaxLengthExtensions {
		return 0, 0, invalid(ReasonGiantLength)
	}
	if end == len(s) {
		return 0, 0, invalid(ReasonInvalidLength)
	}
	value, err := DecodeDigit(s[end])
	if err != nil {
		return 0, 0, err
	}
	if end > 0 {
		value--
	}
	return end*lengthRadix + value, end + 1, nil
}
