package kiosk

import (
	"github.com/shopspring/decimal"
)

// MaxAmountLength is the longest amount the keypad accepts.
const MaxAmountLength = 10

// Keypad keys accepted by Amount.Append.
var Keys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "00", "0", "."}

// ValidKey reports whether k is a keypad key.
func ValidKey(k string) bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

// Amount is the text typed on the keypad. The zero value is empty.
//
// Entry is permissive: repeated separators and leading zeros are kept as
// typed. Numeric interpretation uses the longest leading number, so
// "1.2.3" reads as 1.2.
type Amount struct {
	text string
}

// Append adds a keypad key. It is a no-op when the result would be longer
// than MaxAmountLength.
func (a *Amount) Append(key string) {
	if len(a.text)+len(key) > MaxAmountLength {
		return
	}
	a.text += key
}

// Backspace removes the last character. It is a no-op on an empty amount.
func (a *Amount) Backspace() {
	if a.text == "" {
		return
	}
	a.text = a.text[:len(a.text)-1]
}

// Clear empties the amount.
func (a *Amount) Clear() {
	a.text = ""
}

// String returns the amount exactly as typed.
func (a Amount) String() string {
	return a.text
}

// Len returns the number of characters typed.
func (a Amount) Len() int {
	return len(a.text)
}

// Value parses the amount. ok is false when no leading number exists.
func (a Amount) Value() (decimal.Decimal, bool) {
	prefix := numericPrefix(a.text)
	if prefix == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IsPositive reports whether the amount is non-empty and parses to a value
// greater than zero.
func (a Amount) IsPositive() bool {
	d, ok := a.Value()
	return ok && d.IsPositive()
}

// numericPrefix returns the longest prefix of s of the form digits[.digits],
// with a trailing separator dropped. It returns "" if s has no leading digit
// before or right after the first separator.
func numericPrefix(s string) string {
	end, seenDot, digits := 0, false, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits++
			end = i + 1
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			continue
		}
		break
	}
	if digits == 0 {
		return ""
	}
	out := s[:end]
	if out[0] == '.' {
		out = "0" + out
	}
	return out
}
