// Package decimal keeps configuration numbers as the exact literal they were
// written with, so "0.98" is stored and rendered as "0.98" and never as a
// float approximation.
package decimal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid decimal literal")

type Decimal struct {
	literal string
	value   decimal.Decimal
}

// New parses literal. It fails when the literal is not a number or does not
// fit into a finite float64.
func New(literal string) (Decimal, error) {
	v, err := decimal.NewFromString(literal)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w %q: %v", ErrInvalid, literal, err)
	}
	f, _ := v.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("%w %q: not finite", ErrInvalid, literal)
	}
	return Decimal{literal: literal, value: v}, nil
}

// MustNew is New for literals known at compile time.
func MustNew(literal string) Decimal {
	d, err := New(literal)
	if err != nil {
		panic(err)
	}
	return d
}

// WithPrecision renders value with exactly precision digits after the point.
func WithPrecision(value float64, precision int32) Decimal {
	v := decimal.NewFromFloat(value)
	return MustNew(v.StringFixed(precision))
}

func (d Decimal) Float64() float64 {
	f, _ := d.value.Float64()
	return f
}

func (d Decimal) String() string {
	if d.literal == "" {
		return "0"
	}
	return d.literal
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := New(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected string: %v", ErrInvalid, err)
	}
	return d.UnmarshalText([]byte(s))
}
