package performance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnualize_EarlierIsSteeper(t *testing.T) {
	for _, p := range []float64{0.5, 5, 25, 80} {
		full := Annualize(p, 90)
		for d := 1; d < 90; d++ {
			assert.Greater(t, Annualize(p, d), full, "p=%v d=%d", p, d)
		}
	}

	for _, p := range []float64{-0.5, -5, -25, -80} {
		full := Annualize(p, 90)
		for d := 1; d < 90; d++ {
			assert.Less(t, Annualize(p, d), full, "p=%v d=%d", p, d)
		}
	}
}

func TestAnnualize_ZeroCases(t *testing.T) {
	for d := 1; d <= 365; d++ {
		assert.Equal(t, 0.0, Annualize(0, d))
	}
	for _, p := range []float64{-50, -1, 1, 50, 500} {
		assert.Equal(t, 0.0, Annualize(p, 0))
		assert.Equal(t, 0.0, Annualize(p, -3))
	}
}

func TestAnnualize_Values(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		days int
		want float64
	}{
		{name: "ninety days", p: 10, days: 90, want: (math.Pow(1.1, 365.25/90) - 1) * 100},
		{name: "one year", p: 10, days: 365, want: (math.Pow(1.1, 365.25/365) - 1) * 100},
		{name: "total loss", p: -100, days: 30, want: -100},
		{name: "overflow", p: 1e6, days: 1, want: 0},
		{name: "not a number", p: math.NaN(), days: 30, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Annualize(tt.p, tt.days), 1e-9)
		})
	}
}

func TestExcessOverCostOfCapital(t *testing.T) {
	assert.InDelta(t, 5.0, ExcessOverCostOfCapital(15), 1e-12)
	assert.InDelta(t, -10.0, ExcessOverCostOfCapital(0), 1e-12)
}
