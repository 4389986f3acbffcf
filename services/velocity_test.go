package services

import (
	"testing"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/models"

	"github.com/stretchr/testify/assert"
)

func moodAt(score int, at time.Time) models.MoodEntry {
	return models.MoodEntry{Score: score, CreatedAt: at}
}

func TestPairwiseVelocityAnomalousDrop(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	previous := moodAt(8, t0)
	latest := moodAt(4, t0.Add(10*time.Hour))

	result := PairwiseVelocity(latest, previous)

	assert.Equal(t, -4, result.VelocityDelta)
	assert.True(t, result.IsAnomalous, "drop of 3+ within 72h is anomalous")
	assert.Contains(t, result.Message, "dropped 4 points")
	assert.False(t, result.NotEnoughData)
}

func TestPairwiseVelocitySmallDrop(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	previous := moodAt(8, t0)
	latest := moodAt(6, t0.Add(100*time.Hour))

	result := PairwiseVelocity(latest, previous)

	assert.Equal(t, -2, result.VelocityDelta)
	assert.False(t, result.IsAnomalous)
}

func TestPairwiseVelocityBigDropOutsideWindow(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	previous := moodAt(9, t0)
	latest := moodAt(3, t0.Add(100*time.Hour))

	result := PairwiseVelocity(latest, previous)

	assert.Equal(t, -6, result.VelocityDelta)
	assert.False(t, result.IsAnomalous, "slow declines over 72h are not anomalies")
}

func TestPairwiseVelocityImprovement(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := PairwiseVelocity(moodAt(8, t0.Add(5*time.Hour)), moodAt(5, t0))

	assert.Equal(t, 3, result.VelocityDelta)
	assert.False(t, result.IsAnomalous)
	assert.Contains(t, result.Message, "improved 3 points")
}

func TestPairwiseVelocityStable(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := PairwiseVelocity(moodAt(6, t0.Add(time.Hour)), moodAt(6, t0))

	assert.Equal(t, 0, result.VelocityDelta)
	assert.Equal(t, "Your mood has been stable", result.Message)
}

func TestWindowedVelocityNotEnoughData(t *testing.T) {
	for _, entries := range [][]models.MoodEntry{nil, {moodAt(5, time.Now())}} {
		result := WindowedVelocity(entries)

		assert.True(t, result.NotEnoughData)
		assert.Equal(t, 0, result.VelocityDelta)
		assert.False(t, result.IsAnomalous)
	}
}

func TestWindowedVelocityEndpointsOnly(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Intermediate recovery is invisible: only first vs last counts
	entries := []models.MoodEntry{
		moodAt(8, t0),
		moodAt(2, t0.Add(12*time.Hour)),
		moodAt(4, t0.Add(40*time.Hour)),
	}

	result := WindowedVelocity(entries)

	assert.Equal(t, -4, result.VelocityDelta)
	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Message, "dropped 4 points")
}

func TestWindowedVelocityImprovement(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		moodAt(3, t0),
		moodAt(8, t0.Add(24*time.Hour)),
	}

	result := WindowedVelocity(entries)

	assert.Equal(t, 5, result.VelocityDelta)
	assert.False(t, result.IsAnomalous)
	assert.Contains(t, result.Message, "improved 5 points")
}
