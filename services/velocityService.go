package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	anomalousDropDelta = -3 // mood points
	velocityWindowHrs  = 72
)

// VelocityResult reports rate-of-change in self-reported mood. The message is
// a presentation convenience, not a policy signal; IsAnomalous is the policy
// output. "Not enough data" (fewer than 2 entries) comes back with delta 0 and
// the NotEnoughData flag set, never disguised as a real zero-delta reading.
type VelocityResult struct {
	VelocityDelta int    `json:"velocityDelta"`
	IsAnomalous   bool   `json:"isAnomalous"`
	Message       string `json:"message"`
	NotEnoughData bool   `json:"notEnoughData,omitempty"`
}

func notEnoughData(msg string) VelocityResult {
	return VelocityResult{VelocityDelta: 0, IsAnomalous: false, Message: msg, NotEnoughData: true}
}

// PairwiseVelocity compares the two most-recent entries (latest first).
// Anomalous when mood dropped 3+ points within 72 hours.
func PairwiseVelocity(latest, previous models.MoodEntry) VelocityResult {
	delta := latest.Score - previous.Score
	hours := latest.CreatedAt.Sub(previous.CreatedAt).Hours()
	isAnomalous := delta <= anomalousDropDelta && hours <= velocityWindowHrs

	var message string
	switch {
	case delta < 0:
		message = fmt.Sprintf("Your mood dropped %d points in the last %d hours", -delta, int(math.Round(hours)))
	case delta > 0:
		message = fmt.Sprintf("Your mood improved %d points. Keep going! 🌱", delta)
	default:
		message = "Your mood has been stable"
	}

	return VelocityResult{VelocityDelta: delta, IsAnomalous: isAnomalous, Message: message}
}

// WindowedVelocity compares the earliest and latest entries of a 72h window
// (entries ordered oldest first). The window itself bounds the time, so the
// drop threshold applies with no extra time constraint. Intermediate entries
// are ignored: a drop that partially recovers inside the window is judged
// end-to-end only.
func WindowedVelocity(entries []models.MoodEntry) VelocityResult {
	if len(entries) < 2 {
		return notEnoughData("Not enough recent data")
	}

	first := entries[0]
	last := entries[len(entries)-1]
	delta := last.Score - first.Score
	isAnomalous := delta <= anomalousDropDelta

	var message string
	switch {
	case delta < 0:
		message = fmt.Sprintf("Your mood dropped %d points in the last 3 days", -delta)
	case delta > 0:
		message = fmt.Sprintf("Your mood improved %d points in the last 3 days. Keep going! 🌱", delta)
	default:
		message = "Your mood has been stable over the last 3 days"
	}

	return VelocityResult{VelocityDelta: delta, IsAnomalous: isAnomalous, Message: message}
}

// ComputeVelocity runs the pairwise variant over the user's two most-recent
// mood entries.
func ComputeVelocity(userID string) (VelocityResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("moods")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(2)
	cursor, err := coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return VelocityResult{}, err
	}
	defer cursor.Close(ctx)

	var moods []models.MoodEntry
	if err := cursor.All(ctx, &moods); err != nil {
		return VelocityResult{}, err
	}
	if len(moods) < 2 {
		return notEnoughData("Not enough data for velocity"), nil
	}
	return PairwiseVelocity(moods[0], moods[1]), nil
}

// ComputeWindowedVelocity runs the windowed variant over the trailing 72 hours.
func ComputeWindowedVelocity(userID string) (VelocityResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("moods")

	since := time.Now().Add(-velocityWindowHrs * time.Hour)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return VelocityResult{}, err
	}
	defer cursor.Close(ctx)

	var moods []models.MoodEntry
	if err := cursor.All(ctx, &moods); err != nil {
		return VelocityResult{}, err
	}
	return WindowedVelocity(moods), nil
}

// CreateMoodEntry stores a mood log with its velocity delta and anomaly flag
// computed once at creation from the prior entry.
func CreateMoodEntry(userID string, score int, emotions []string, note string, moodCtx models.MoodContext) (*models.MoodEntry, VelocityResult, error) {
	velocity, err := ComputeVelocity(userID)
	if err != nil {
		return nil, VelocityResult{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("moods")
	if emotions == nil {
		emotions = []string{}
	}
	if moodCtx.AcademicWeekType == "" {
		moodCtx.AcademicWeekType = "regular"
	}
	entry := &models.MoodEntry{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Score:         score,
		Emotions:      emotions,
		Context:       moodCtx,
		VelocityDelta: velocity.VelocityDelta,
		IsAnomalous:   velocity.IsAnomalous,
		Note:          note,
		CreatedAt:     time.Now(),
	}
	_, err = coll.InsertOne(ctx, entry)
	return entry, velocity, err
}

// GetMoodHistory returns the user's mood entries since the given time, oldest
// first.
func GetMoodHistory(userID string, since time.Time) ([]models.MoodEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("moods")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.MoodEntry
	err = cursor.All(ctx, &out)
	return out, err
}
