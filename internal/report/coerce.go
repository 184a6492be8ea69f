package report

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Decimal orders of magnitude a float64 can hold. Outside them parseFloat
// gives Infinity or 0, and both read as zero here.
const (
	maxMagnitude = 309
	minMagnitude = -324
)

// Amount reads a loosely typed numeric field the way parseFloat does: the
// longest numeric prefix wins and anything unreadable is zero.
func Amount(v domain.Flexible) decimal.Decimal {
	raw := strings.TrimSpace(string(v))
	if raw == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return bounded(d)
	}
	prefix := strings.TrimSuffix(numericPrefix.FindString(raw), ".")
	if prefix == "" || prefix == "+" || prefix == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return bounded(d)
}

// bounded zeroes values whose magnitude no float64 can carry, so a single
// exponent-heavy field cannot blow up later rescaling.
func bounded(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxMagnitude || magnitude < minMagnitude {
		return decimal.Zero
	}
	return d
}
