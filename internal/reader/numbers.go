package reader

import "strconv"

// parseNumber implements spec.md §4.8's parse order: prefer a signed
// integer; on overflow, a decimal point, or an exponent, fall back to a
// double. ok is false if literal isn't a number at all (caller then tries
// Ident/Keyword classification instead).
func parseNumber(literal string) (isFloat bool, i int64, f float64, ok bool) {
	if literal == "" || literal == "+" || literal == "-" || literal == "." {
		return false, 0, 0, false
	}
	looksFloat := false
	for idx, r := range literal {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-':
			if idx != 0 {
				return false, 0, 0, false
			}
		case r == '.':
			looksFloat = true
		case r == 'e' || r == 'E':
			looksFloat = true
		default:
			return false, 0, 0, false
		}
	}
	if !looksFloat {
		iv, err := strconv.ParseInt(literal, 10, 64)
		if err == nil {
			return false, iv, 0, true
		}
		// Overflowed int64: fall back to double, per spec.md §4.8.
		looksFloat = true
	}
	fv, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return false, 0, 0, false
	}
	return true, 0, fv, true
}

// isIdentChar accepts spec.md §6's identifier character set
// ("alphanumerics, - _ * + ! ? / . $ = < > &") plus '%' and '#'.
func isIdentChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '-', '_', '*', '+', '!', '?', '/', '.', '$', '=', '<', '>', '&', '%', '#':
		return true
	}
	return false
}
