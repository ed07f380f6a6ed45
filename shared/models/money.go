package models

import (
	"fmt"
	"math"
	"strconv"
)

// Money is an amount in pence. Sums of Money are exact; JSON carries the
// value in pounds.
type Money int64

// GBP returns whole pounds as Money
func GBP(pounds int64) Money {
	return Money(pounds * 100)
}

// Pounds returns m as a decimal number of pounds, for display only
func (m Money) Pounds() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s£%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Pounds(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %s: %w", data, err)
	}
	*m = Money(math.Round(f * 100))
	return nil
}
