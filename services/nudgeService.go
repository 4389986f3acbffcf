package services

import (
	"context"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NudgeContext is the detected-state flag set a nudge is selected from.
type NudgeContext struct {
	VelocityDrop bool
	HighBurnout  bool
	ExamSoon     bool
	Loneliness   bool
	Overwhelmed  bool
}

var nudgeTemplates = map[string]models.NudgeContent{
	"breathing": {
		Title:    "Take a Breath 🫁",
		Message:  "Try box breathing: inhale 4 seconds, hold 4, exhale 4, hold 4. Repeat 4 times.",
		Duration: 60,
	},
	"grounding": {
		Title:    "Ground Yourself 🌍",
		Message:  "5-4-3-2-1: Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.",
		Duration: 60,
	},
	"pomodoro": {
		Title:    "Focus Reset 🎯",
		Message:  "Study for 25 minutes, then take a 5-minute break. You've got this!",
		Duration: 1500,
	},
	"social": {
		Title:    "Connect with Someone 💬",
		Message:  "Send a quick message to a friend or family member. Human connection heals.",
		Duration: 60,
	},
	"sleep": {
		Title:    "Wind Down 😴",
		Message:  "Put your phone away 30 minutes before bed. Try reading or gentle stretching instead.",
		Duration: 1800,
	},
}

type nudgeRule struct {
	matches func(NudgeContext) bool
	typ     string
	trigger string
}

// nudgeRules is evaluated top to bottom; the first true flag wins.
var nudgeRules = []nudgeRule{
	{func(c NudgeContext) bool { return c.VelocityDrop }, "breathing", "velocity_drop"},
	{func(c NudgeContext) bool { return c.HighBurnout }, "sleep", "high_burnout"},
	{func(c NudgeContext) bool { return c.ExamSoon }, "pomodoro", "exam_approaching"},
	{func(c NudgeContext) bool { return c.Loneliness }, "social", "loneliness_detected"},
	{func(c NudgeContext) bool { return c.Overwhelmed }, "grounding", "overwhelm_detected"},
}

// SelectNudge maps a context flag set to an intervention type and trigger tag.
func SelectNudge(nudgeCtx NudgeContext) (string, string) {
	for _, rule := range nudgeRules {
		if rule.matches(nudgeCtx) {
			return rule.typ, rule.trigger
		}
	}
	return "breathing", "general_check"
}

// NudgeTemplate resolves a type to its static content, falling back to the
// breathing exercise for unknown types.
func NudgeTemplate(nudgeType string) models.NudgeContent {
	if tpl, ok := nudgeTemplates[nudgeType]; ok {
		return tpl
	}
	return nudgeTemplates["breathing"]
}

// CreateNudge stores a nudge of the given type for the user.
func CreateNudge(userID, nudgeType, trigger string) (*models.Nudge, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("nudges")
	now := time.Now()
	nudge := &models.Nudge{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Type:        nudgeType,
		Trigger:     trigger,
		Content:     NudgeTemplate(nudgeType),
		DeliveredAt: now,
		CreatedAt:   now,
	}
	_, err := coll.InsertOne(ctx, nudge)
	return nudge, err
}

// TriggerContextNudge selects and delivers the nudge for the detected context.
func TriggerContextNudge(userID string, nudgeCtx NudgeContext) (*models.Nudge, error) {
	nudgeType, trigger := SelectNudge(nudgeCtx)
	return CreateNudge(userID, nudgeType, trigger)
}

// GetPendingNudges returns the user's latest undismissed nudges.
func GetPendingNudges(userID string, limit int64) ([]models.Nudge, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("nudges")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":      userID,
		"dismissed_at": nil,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Nudge
	err = cursor.All(ctx, &out)
	return out, err
}

// DismissNudge marks a nudge dismissed, optionally recording helpfulness.
func DismissNudge(userID, nudgeID string, wasHelpful *bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	oid, err := primitive.ObjectIDFromHex(nudgeID)
	if err != nil {
		return err
	}
	coll := config.OpenCollection("nudges")
	set := bson.D{{Key: "dismissed_at", Value: time.Now()}}
	if wasHelpful != nil {
		set = append(set, bson.E{Key: "was_helpful", Value: *wasHelpful})
	}
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
