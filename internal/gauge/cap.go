package gauge

import (
	"math/big"
	"strconv"
	"strings"

	"gaugeScope/internal/model"
)

// Relative weight caps are 18-decimal fractions; 10^16 is one percent.
var capScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)

// FormatCap renders a raw relative weight cap as a percentage, always with a
// fractional part: 5e15 is "0.5%", 2e17 is "20.0%". Values whose decimal
// exponent falls outside [-4, 16) switch to exponent notation the way a
// shortest round-trip repr does: 1 is "1e-16%".
func FormatCap(raw *big.Int) string {
	if raw == nil {
		return model.NotApplicable
	}
	pct, _ := new(big.Rat).SetFrac(raw, capScale).Float64()
	return formatShortest(pct) + "%"
}

func formatShortest(v float64) string {
	if v != 0 {
		sci := strconv.FormatFloat(v, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
