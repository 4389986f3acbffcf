package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBurnout(t *testing.T) {
	tests := []struct {
		name       string
		rested     int
		motivation int
		tookBreaks bool
		want       int
	}{
		{"best case scores zero", 5, 5, true, 0},
		{"worst case", 1, 1, false, 84},
		{"no breaks mid scores", 3, 3, false, 52},
		{"breaks shave twenty points", 3, 3, true, 32},
		{"rested but unmotivated", 5, 1, false, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeBurnout(tt.rested, tt.motivation, tt.tookBreaks))
		})
	}
}

func TestBurnoutTierBoundaries(t *testing.T) {
	assert.Equal(t, "critical", BurnoutTier(90))
	assert.Equal(t, "critical", BurnoutTier(100))
	assert.Equal(t, "high", BurnoutTier(89))
	assert.Equal(t, "high", BurnoutTier(70))
	assert.Equal(t, "moderate", BurnoutTier(69))
	assert.Equal(t, "moderate", BurnoutTier(40))
	assert.Equal(t, "low", BurnoutTier(39))
	assert.Equal(t, "low", BurnoutTier(0))
}

func TestAggregateBurnout(t *testing.T) {
	result, ok := AggregateBurnout([]int{80, 90, 100})

	assert.True(t, ok)
	assert.Equal(t, 90, result.Score)
	assert.Equal(t, "critical", result.RiskLevel)
}

func TestAggregateBurnoutRounds(t *testing.T) {
	result, ok := AggregateBurnout([]int{52, 53})

	assert.True(t, ok)
	assert.Equal(t, 53, result.Score) // 52.5 rounds up
	assert.Equal(t, "moderate", result.RiskLevel)
}

func TestAggregateBurnoutEmptyWindowIsNoOp(t *testing.T) {
	// Zero check-ins must not look like a real low score.
	result, ok := AggregateBurnout(nil)

	assert.False(t, ok)
	assert.Zero(t, result)
}
