// Package samplesize computes the power-based total sample size for a
// two-arm mean comparison using the normal approximation. Inputs arrive as
// the free-text strings the form collects; parsing failures fall back to
// conventional defaults instead of erroring.
package samplesize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultAlpha = 0.05
	DefaultPower = 0.80
)

// Two-sided critical values for the supported alpha levels.
var zAlpha = []struct {
	level, z float64
}{
	{0.10, 1.645},
	{0.05, 1.960},
	{0.01, 2.576},
	{0.001, 3.291},
}

var zBeta = []struct {
	level, z float64
}{
	{0.80, 0.842},
	{0.85, 1.036},
	{0.90, 1.282},
	{0.95, 1.645},
	{0.99, 2.326},
}

var numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// EstimateTotal returns the dropout-inflated total sample size, or ok=false
// when no positive effect size can be parsed. That is a defined failure mode:
// the caller leaves the current total untouched.
func EstimateTotal(alpha, power, effectSize, dropout string) (int, bool) {
	d, ok := firstNumber(effectSize)
	if !ok || d <= 0 {
		return 0, false
	}

	za := lookupZ(zAlpha, parseOrDefault(alpha, DefaultAlpha), 0.005, 1.960)
	zb := lookupZ(zBeta, parseOrDefault(power, DefaultPower), 0.025, 0.842)

	perGroup := math.Ceil(2 * math.Pow((za+zb)/d, 2))
	total := int(math.Ceil(perGroup * 2))

	if frac, ok := firstNumber(dropout); ok {
		if frac > 1 {
			frac /= 100
		}
		if frac > 0 && frac < 1 {
			total = int(math.Ceil(float64(total) / (1 - frac)))
		}
	}
	return total, true
}

func parseOrDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// lookupZ returns the critical value for the table row whose level is within
// tol of the supplied value, defaulting to the conventional 0.05/0.80 entry.
func lookupZ(table []struct{ level, z float64 }, value, tol, def float64) float64 {
	for _, row := range table {
		if math.Abs(row.level-value) <= tol {
			return row.z
		}
	}
	return def
}

// firstNumber extracts the first numeric token from free text, so inputs
// like "Cohen's d = 0.5" or "15%" resolve to their embedded magnitude.
func firstNumber(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.ReplaceAll(m, ",", ".")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
