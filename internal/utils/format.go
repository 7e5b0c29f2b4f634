
package utils

import (
	"fmt"
	"strings"
)

// FormatNumber renders an integer amount with comma grouping, optionally
// in Persian digits ("fa").
func FormatNumber(n int64, digits string) string {
	out := formatIntWithCommas(n)
	if digits == "fa" {
		out = ToPersianDigits(out)
	}
	return out
}

func formatIntWithCommas(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(sign)
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
