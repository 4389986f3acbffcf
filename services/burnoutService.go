package services

import (
	"context"
	"math"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Burnout tier thresholds over the 7-day average.
const (
	burnoutCriticalThreshold = 90
	burnoutHighThreshold     = 70
	burnoutModerateThreshold = 40

	burnoutWindowDays = 7
)

// BurnoutResult is the recomputed 7-day aggregate.
type BurnoutResult struct {
	Score     int    `json:"score"`
	RiskLevel string `json:"riskLevel"`
}

// ComputeBurnout converts one check-in into a 0-100 burnout score.
// Rested and motivation each contribute 0-40, breaks 0 or 20; a well-rested,
// motivated, break-taking student lands near 0.
func ComputeBurnout(restedScore, motivationScore int, tookBreaks bool) int {
	restComponent := restedScore * 8
	motivComponent := motivationScore * 8
	breakComponent := 0
	if tookBreaks {
		breakComponent = 20
	}
	burnout := 100 - (restComponent + motivComponent + breakComponent)
	if burnout < 0 {
		burnout = 0
	}
	if burnout > 100 {
		burnout = 100
	}
	return burnout
}

// BurnoutTier maps an averaged score to its risk tier.
func BurnoutTier(avgBurnout int) string {
	switch {
	case avgBurnout >= burnoutCriticalThreshold:
		return "critical"
	case avgBurnout >= burnoutHighThreshold:
		return "high"
	case avgBurnout >= burnoutModerateThreshold:
		return "moderate"
	default:
		return "low"
	}
}

// AggregateBurnout averages the window's check-in scores (rounded to nearest
// integer) and tiers the result. ok is false with zero samples: the aggregate
// is then a no-op, never a misleading zero/low signal.
func AggregateBurnout(scores []int) (result BurnoutResult, ok bool) {
	if len(scores) == 0 {
		return BurnoutResult{}, false
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := int(math.Round(float64(sum) / float64(len(scores))))
	return BurnoutResult{Score: avg, RiskLevel: BurnoutTier(avg)}, true
}

// CreateBurnoutCheckin stores a check-in with its burnout score computed once
// at creation. The one-per-calendar-day rule is enforced by the caller via
// HasCheckedInToday before this runs.
func CreateBurnoutCheckin(userID string, restedScore, motivationScore int, tookBreaks bool) (*models.BurnoutCheckin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("burnout_checkins")
	checkin := &models.BurnoutCheckin{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		RestedScore:     restedScore,
		MotivationScore: motivationScore,
		TookBreaks:      tookBreaks,
		ComputedBurnout: ComputeBurnout(restedScore, motivationScore, tookBreaks),
		CreatedAt:       time.Now(),
	}
	_, err := coll.InsertOne(ctx, checkin)
	return checkin, err
}

// UpdateBurnoutScore recomputes the user's 7-day rolling burnout average and
// risk tier. Returns nil (no error) when the window holds zero check-ins;
// the user's prior score and tier are left untouched.
func UpdateBurnoutScore(userID string) (*BurnoutResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("burnout_checkins")

	since := time.Now().AddDate(0, 0, -burnoutWindowDays)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkins []models.BurnoutCheckin
	if err := cursor.All(ctx, &checkins); err != nil {
		return nil, err
	}

	scores := make([]int, 0, len(checkins))
	for _, c := range checkins {
		scores = append(scores, c.ComputedBurnout)
	}
	result, ok := AggregateBurnout(scores)
	if !ok {
		return nil, nil
	}

	userColl := config.OpenCollection("users")
	_, err = userColl.UpdateOne(ctx, bson.M{"user_id": userID}, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "burnout_score", Value: result.Score},
			{Key: "burnout_risk_level", Value: result.RiskLevel},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HasCheckedInToday reports whether the user already has a check-in since
// local midnight.
func HasCheckedInToday(userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("burnout_checkins")

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := coll.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBurnoutTrend returns the user's check-ins since the given time, oldest
// first, for the trend chart.
func GetBurnoutTrend(userID string, since time.Time) ([]models.BurnoutCheckin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("burnout_checkins")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.BurnoutCheckin
	err = cursor.All(ctx, &out)
	return out, err
}
