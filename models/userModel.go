package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LinguisticBaseline is the user's rolling "normal conversation" profile,
// built from low-risk messages and used as the reference point for deviation.
// SamplesCollected only ever increments; below 5 samples the deviation logic
// falls back to absolute thresholds.
type LinguisticBaseline struct {
	AvgSentenceLength float64 `bson:"avg_sentence_length" json:"avg_sentence_length"`
	AvgResponseTimeMs float64 `bson:"avg_response_time_ms" json:"avg_response_time_ms"`
	PositiveWordRatio float64 `bson:"positive_word_ratio" json:"positive_word_ratio"`
	SamplesCollected  int     `bson:"samples_collected" json:"samples_collected"`
}

type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	MoodScore int                `bson:"mood_score,omitempty" json:"mood_score,omitempty"` // 1-10
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          *string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email         *string            `json:"email" bson:"email" validate:"required,email"`
	Password      *string            `json:"password" bson:"password" validate:"required,min=6"`
	University    *string            `json:"university,omitempty" bson:"university,omitempty"`
	Year          int                `json:"year,omitempty" bson:"year,omitempty" validate:"omitempty,min=1,max=6"`
	Token         *string            `json:"token,omitempty" bson:"token,omitempty"`
	Role          *string            `json:"role" bson:"role"` // USER / COUNSELOR / ADMIN
	Refresh_token *string            `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	Reset_token   *string            `json:"-" bson:"reset_token,omitempty"`
	Reset_expires *time.Time         `json:"-" bson:"reset_expires,omitempty"`

	// Burnout tracking (7-day rolling average of check-ins)
	BurnoutScore     int    `json:"burnout_score" bson:"burnout_score"`           // 0-100
	BurnoutRiskLevel string `json:"burnout_risk_level" bson:"burnout_risk_level"` // low / moderate / high / critical

	LinguisticBaseline LinguisticBaseline `json:"linguistic_baseline" bson:"linguistic_baseline"`

	// Counselor assignment; the crisis flag survives across sessions until a
	// counselor explicitly clears it.
	AssignedCounselor  *string `json:"assigned_counselor,omitempty" bson:"assigned_counselor,omitempty"`
	IsFlaggedForCrisis bool    `json:"is_flagged_for_crisis" bson:"is_flagged_for_crisis"`

	// Nudge preferences
	NudgesEnabled bool   `json:"nudges_enabled" bson:"nudges_enabled"`
	NudgeTime     string `json:"nudge_time" bson:"nudge_time"` // "HH:MM"
	Timezone      string `json:"timezone" bson:"timezone"`

	JournalEntries []JournalEntry `json:"journal_entries,omitempty" bson:"journal_entries,omitempty"`

	Created_at time.Time `json:"created_at" bson:"created_at"`
	Updated_at time.Time `json:"updated_at" bson:"updated_at"`
	User_id    string    `json:"user_id" bson:"user_id"`
}
