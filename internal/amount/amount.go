// Package amount normalizes locale-formatted amount strings from Finanzguru
// CSV exports. Amounts use `.` as the thousands separator and `,` as the
// decimal separator (e.g. "1.234,56").
package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatError reports an amount cell that could not be parsed as a
// locale-formatted decimal. A single bad cell aborts the whole aggregation;
// no best-effort summing is attempted.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("amount %q is not a locale-formatted decimal: %v", e.Raw, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Normalize converts a locale-formatted amount string to a float64.
// Thousands separators are stripped, the decimal comma becomes a decimal
// point. Returns a *FormatError if the result is not parseable.
func Normalize(raw string) (float64, error) {
	d, err := parse(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// SumAbsolute normalizes every value, sums them and returns the absolute
// value of the total. The sign is applied to the total, not per element, so
// mixed-sign inputs cancel before the magnitude is taken. An empty input
// sums to 0.
//
// Summation runs on decimals so cent values never accumulate binary float
// drift; only the final total is converted to float64.
func SumAbsolute(values []string) (float64, error) {
	total := decimal.Zero
	for _, raw := range values {
		d, err := parse(raw)
		if err != nil {
			return 0, err
		}
		total = total.Add(d)
	}
	return total.Abs().InexactFloat64(), nil
}

func parse(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &FormatError{Raw: raw, Err: err}
	}
	return d, nil
}
