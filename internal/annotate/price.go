package annotate

import (
	"math"
	"strconv"
)

// FormatPrice renders a thousands-grouped currency string, or "N/A" when
// the listing carries no usable price.
func FormatPrice(v *float64) string {
	if v == nil || *v <= 0 {
		return "N/A"
	}
	return "$" + groupThousands(strconv.FormatInt(int64(math.Round(*v)), 10))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var out []byte
	head := n % 3
	if head > 0 {
		out = append(out, digits[:head]...)
	}
	for i := head; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

// orNA substitutes "N/A" for an absent display field.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func withUnit(s, unit string) string {
	if s == "" {
		return ""
	}
	return s + " " + unit
}
