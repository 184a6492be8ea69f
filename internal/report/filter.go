package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var (
	ErrMissingRange = errors.New("start and end dates are required")
	ErrInvalidRange = errors.New("invalid date range")
	ErrNoSales      = errors.New("no sales in range")
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the date-only and timestamp forms used by the backend
// and the date pickers. Date-only values are UTC midnight.
func ParseTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
}

type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange rejects missing boundaries before anything else runs.
func ParseRange(start string, end string) (Range, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return Range{}, ErrMissingRange
	}
	from, err := ParseTime(start)
	if err != nil {
		return Range{}, err
	}
	to, err := ParseTime(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: from, End: to}, nil
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// FilterByRange keeps the sales dated inside r, both ends inclusive, at full
// timestamp resolution. Sales with an unreadable date never match.
func FilterByRange(sales []domain.Sale, r Range) []domain.Sale {
	out := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		at, err := ParseTime(sale.Date)
		if err != nil {
			continue
		}
		if r.Contains(at) {
			out = append(out, sale)
		}
	}
	return out
}

// Select combines range parsing and filtering and fails with ErrNoSales when
// nothing matched.
func Select(sales []domain.Sale, start string, end string) ([]domain.Sale, error) {
	r, err := ParseRange(start, end)
	if err != nil {
		return nil, err
	}
	matched := FilterByRange(sales, r)
	if len(matched) == 0 {
		return nil, ErrNoSales
	}
	return matched, nil
}
