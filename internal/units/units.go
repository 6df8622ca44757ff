package units

import "math"

const (
	kilogramsPerPound  = 0.453592
	centimetersPerInch = 2.54
	inchesPerFoot      = 12
)

// PoundsToKilograms converts mass in pounds to kilograms.
func PoundsToKilograms(lbs float64) float64 {
	return lbs * kilogramsPerPound
}

// FeetInchesToCentimeters converts a stacked feet + inches length to centimeters.
func FeetInchesToCentimeters(feet, inches int) float64 {
	totalInches := feet*inchesPerFoot + inches
	return float64(totalInches) * centimetersPerInch
}

// RoundToOneDecimal rounds half away from zero, e.g. 72.57 -> 72.6
func RoundToOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}

func RoundToInteger(x float64) float64 {
	return math.Round(x)
}
