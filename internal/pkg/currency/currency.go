package currency

import "strconv"

// FormatVND renders an integer amount of Vietnamese dong as a display
// string with dot-separated thousands, e.g. 22000000 -> "22.000.000 ₫".
// Prices carry no fractional subunit.
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	s := string(out)
	if neg {
		s = "-" + s
	}
	return s + " ₫"
}
