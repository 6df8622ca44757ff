package units

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestPoundsToKilograms(t *testing.T) {
	assert.Equal(t, 0.0, PoundsToKilograms(0))
	assert.InDelta(t, 72.57472, PoundsToKilograms(160), 1e-9)

	for i := 0; i < 50; i++ {
		lbs := gofakeit.Float64Range(0, 600)
		assert.InDelta(t, lbs*0.453592, PoundsToKilograms(lbs), 1e-9)
	}
}

func TestFeetInchesToCentimeters(t *testing.T) {
	assert.Equal(t, 0.0, FeetInchesToCentimeters(0, 0))
	assert.InDelta(t, 177.8, FeetInchesToCentimeters(5, 10), 1e-9)
	assert.InDelta(t, 2.54, FeetInchesToCentimeters(0, 1), 1e-9)
	assert.InDelta(t, 30.48, FeetInchesToCentimeters(1, 0), 1e-9)
}

func TestFeetInchesToCentimeters_MonotonicInTotalInches(t *testing.T) {
	prev := FeetInchesToCentimeters(0, 0)
	for feet := 0; feet <= 8; feet++ {
		for inches := 0; inches < 12; inches++ {
			if feet == 0 && inches == 0 {
				continue
			}
			cm := FeetInchesToCentimeters(feet, inches)
			assert.Greater(t, cm, prev, "feet=%d inches=%d", feet, inches)
			prev = cm
		}
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 72.6, RoundToOneDecimal(72.57472))
	assert.Equal(t, 72.5, RoundToOneDecimal(72.5))
	assert.Equal(t, 0.0, RoundToOneDecimal(0.04))
	assert.Equal(t, 178.0, RoundToInteger(177.8))
	assert.Equal(t, 177.0, RoundToInteger(177.49))
}
