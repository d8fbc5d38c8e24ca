package lexer

import (
	"github.com/KimNorgaard/go-envfile/internal/token"
)

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// Classify infers the scalar type of an unquoted value. The order of the
// checks is significant: booleans first, then integers made of ASCII digits
// only, then decimal fractions, and everything else is a string.
//
// With signed set, integers may carry a leading '+' or '-'.
func Classify(s string, signed bool) token.Type {
	if _, ok := token.LookupBool(s); ok {
		return token.BOOL
	}
	if typ, ok := ParseAsNumber(s, signed); ok {
		return typ
	}
	return token.STRING
}

// ParseAsNumber reports whether s is an integer or a decimal fraction.
//
// An integer is one or more ASCII digits; a sign is only accepted when signed
// is true. A float is an optional sign, optional digits, a mandatory '.', and
// at least one digit. Exponents are not recognized.
func ParseAsNumber(s string, signed bool) (token.Type, bool) {
	if len(s) == 0 {
		return token.ILLEGAL, false
	}

	i := 0
	hasSign := s[0] == '-' || s[0] == '+'
	if hasSign {
		i++
	}

	intEnd := consumeDigits(s, i)
	if intEnd == len(s) {
		if intEnd == i {
			return token.ILLEGAL, false // Sign without digits.
		}
		if hasSign && !signed {
			return token.ILLEGAL, false
		}
		return token.INT, true
	}

	if s[intEnd] != '.' {
		return token.ILLEGAL, false
	}
	fracStart := intEnd + 1
	fracEnd := consumeDigits(s, fracStart)
	if fracEnd == fracStart || fracEnd != len(s) {
		return token.ILLEGAL, false
	}
	return token.FLOAT, true
}
