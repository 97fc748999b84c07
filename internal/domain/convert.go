package domain

import "fmt"

const kgToLb = 2.2046226218

// Unit is a display unit for weights. Everything is stored in kilograms.
type Unit string

// Supported display units.
const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lb"
)

// ParseUnit accepts "kg", "lb" or the empty string (kilograms).
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", Kilograms:
		return Kilograms, nil
	case Pounds:
		return Pounds, nil
	}
	return "", fmt.Errorf("unit must be %q or %q", Kilograms, Pounds)
}

// FromKilograms converts a kilogram value to u.
func (u Unit) FromKilograms(v float64) float64 {
	if u == Pounds {
		return v * kgToLb
	}
	return v
}
