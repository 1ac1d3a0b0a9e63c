// Package money provides a fixed-point representation for monetary values.
// Amounts are stored as integer minor units (cents) to avoid floating-point
// drift across create/read/aggregate cycles.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value in minor units (cents).
type Amount int64

// ErrInvalidAmount indicates a value that cannot be parsed as money.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// maxMajorUnits bounds parseable values so the conversion to cents
// cannot overflow int64.
const maxMajorUnits = float64(math.MaxInt64 / 100)

// FromFloat converts a major-unit float (e.g. 12.5) to an Amount,
// rounding half away from zero at the cent boundary. The value must not
// exceed maxMajorUnits in magnitude; Parse enforces that for wire input.
func FromFloat(f float64) Amount {
	return Amount(math.Round(f * 100))
}

// Parse converts a decimal string (e.g. "12.5") to an Amount.
// Clients send monetary fields as text or number interchangeably.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	if math.Abs(f) > maxMajorUnits {
		return 0, ErrInvalidAmount
	}
	return FromFloat(f), nil
}

// Float64 returns the amount in major units.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// IsZero reports whether the amount is zero. The API treats a zero
// monetary field the same as an absent one.
func (a Amount) IsZero() bool {
	return a == 0
}

// String formats the amount as a plain decimal, e.g. "12.5".
func (a Amount) String() string {
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}

// MarshalJSON emits the amount as a JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*a = 0
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("unmarshal amount %q: %w", s, err)
	}
	*a = parsed
	return nil
}
