package runtime

import (
	"math"
	"strconv"
	"strings"

	avmerrors "github.com/flashcore/avm2/errors"
)

const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ToStringRadix renders n the way Number.prototype.toString(radix) does:
// base-2 through base-36, built by repeated division on the integer part
// and repeated multiplication on the fractional part. radix outside
// [2,36] throws AVM RangeError #1003.
func ToStringRadix(n float64, radix int) (string, error) {
	if radix == 10 {
		return formatDefault(n), nil
	}
	if radix < 2 || radix > 36 {
		return "", avmerrors.NewNumbered(avmerrors.CodeRadixRange, "")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return formatDefault(n), nil
	}
	neg := n < 0
	if neg {
		n = -n
	}
	intPart := math.Floor(n)
	frac := n - intPart

	var intDigits []byte
	if intPart == 0 {
		intDigits = []byte{'0'}
	}
	for intPart > 0 {
		d := math.Mod(intPart, float64(radix))
		intDigits = append([]byte{digitAlphabet[int(d)]}, intDigits...)
		intPart = math.Floor(intPart / float64(radix))
	}

	s := string(intDigits)
	if frac > 0 {
		var fracDigits []byte
		for i := 0; i < 1100 && frac > 0; i++ {
			frac *= float64(radix)
			d := math.Floor(frac)
			fracDigits = append(fracDigits, digitAlphabet[int(d)])
			frac -= d
		}
		if len(fracDigits) > 0 {
			s += "." + string(fracDigits)
		}
	}
	if neg {
		s = "-" + s
	}
	return s, nil
}

// ToFixed renders n with exactly digits fractional digits, correctly
// rounded against the actual IEEE-754 value (so 1.005.toFixed(2) is
// "1.00", since the nearest double to 1.005 is slightly below it).
// digits outside [0,20] throws AVM RangeError #1002.
func ToFixed(n float64, digits int) (string, error) {
	if digits < 0 || digits > 20 {
		return "", avmerrors.NewNumbered(avmerrors.CodeFractionDigitsRange, "")
	}
	return strconv.FormatFloat(n, 'f', digits, 64), nil
}

// ToExponential renders n in exponential notation with digits fractional
// mantissa digits, normalized to AS3's exponent form (no leading zero, a
// single "+"/"-" sign, e.g. "1.23e+4" rather than Go's "1.23e+04").
// digits outside [0,20] throws AVM RangeError #1002.
func ToExponential(n float64, digits int) (string, error) {
	if digits < 0 || digits > 20 {
		return "", avmerrors.NewNumbered(avmerrors.CodeFractionDigitsRange, "")
	}
	return normalizeExponent(strconv.FormatFloat(n, 'e', digits, 64)), nil
}

// ToPrecision renders n with the given number of significant digits,
// switching to exponential form outside the range a plain decimal would
// stay readable in, matching Number.prototype.toPrecision's contract.
// precision outside [1,21] throws AVM RangeError #1002.
func ToPrecision(n float64, precision int) (string, error) {
	if precision < 1 || precision > 21 {
		return "", avmerrors.NewNumbered(avmerrors.CodeFractionDigitsRange, "")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return formatDefault(n), nil
	}
	s := strconv.FormatFloat(n, 'e', precision-1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp >= precision {
		return normalizeExponent(s), nil
	}
	return strconv.FormatFloat(n, 'f', precision-1-exp, 64), nil
}

func normalizeExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 {
		return s
	}
	mantissa := s[:idx]
	exp := s[idx+1:]
	sign := exp[0]
	rest := strings.TrimLeft(exp[1:], "0")
	if rest == "" {
		rest = "0"
	}
	return mantissa + "e" + string(sign) + rest
}

func formatDefault(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
