package statframe

import (
	"math"
	"strconv"
	"strings"
)

var numberCleaner = strings.NewReplacer(",", "", "%", "")

// ParseNumber strips thousands separators and percent signs and parses the
// rest as a float. Empty, non-numeric or non-finite text reports false.
func ParseNumber(text string) (float64, bool) {
	cleaned := strings.TrimSpace(numberCleaner.Replace(text))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
