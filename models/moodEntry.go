package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodContext carries academic-calendar hints attached to a mood log.
type MoodContext struct {
	ExamWithin48h    bool   `bson:"exam_within_48h" json:"exam_within_48h"`
	AcademicWeekType string `bson:"academic_week_type" json:"academic_week_type"` // midterm / finals / regular / break
}

// MoodEntry is a self-reported mood log. VelocityDelta and IsAnomalous are
// computed once at creation from the prior entry; immutable afterwards.
type MoodEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	Score         int                `bson:"score" json:"score" validate:"required,min=1,max=10"`
	Emotions      []string           `bson:"emotions,omitempty" json:"emotions,omitempty"` // anxious, lonely, overwhelmed, happy, focused, tired, stressed, hopeful
	Context       MoodContext        `bson:"context" json:"context"`
	VelocityDelta int                `bson:"velocity_delta" json:"velocity_delta"`
	IsAnomalous   bool               `bson:"is_anomalous" json:"is_anomalous"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
