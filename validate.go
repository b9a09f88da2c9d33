package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts accepted for reportDate/expenseDate fields. A plain calendar
// date is canonical; full timestamps are tolerated and truncated by the
// store's date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// validateAmount enforces a non-negative amount with at most two fractional
// digits, matching the decimal(10,2) storage.
func validateAmount(amt decimal.Decimal) error {
	if amt.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if amt.Exponent() < -2 {
		return fmt.Errorf("amount must have at most 2 decimal places")
	}
	return nil
}
