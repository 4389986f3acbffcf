package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NudgeContent is the templated intervention shown to the user.
type NudgeContent struct {
	Title     string `bson:"title" json:"title"`
	Message   string `bson:"message" json:"message"`
	ActionURL string `bson:"action_url,omitempty" json:"action_url,omitempty"`
	Duration  int    `bson:"duration" json:"duration"` // seconds
}

// Nudge is a delivered micro-intervention.
type Nudge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Type        string             `bson:"type" json:"type"`       // breathing / grounding / pomodoro / social / sleep
	Trigger     string             `bson:"trigger" json:"trigger"` // e.g. velocity_drop, high_burnout
	Content     NudgeContent       `bson:"content" json:"content"`
	DeliveredAt time.Time          `bson:"delivered_at" json:"delivered_at"`
	DismissedAt *time.Time         `bson:"dismissed_at,omitempty" json:"dismissed_at,omitempty"`
	WasHelpful  *bool              `bson:"was_helpful,omitempty" json:"was_helpful,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
