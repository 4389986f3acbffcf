package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session risk levels, ordered none < low < moderate < high.
const (
	RiskNone     = "none"
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// MessageLinguistics is the subset of a message analysis persisted with the
// message itself.
type MessageLinguistics struct {
	SentenceCount  int      `bson:"sentence_count" json:"sentence_count"`
	NegativeWords  int      `bson:"negative_words" json:"negative_words"`
	CrisisKeywords []string `bson:"crisis_keywords,omitempty" json:"crisis_keywords,omitempty"`
	SentimentScore float64  `bson:"sentiment_score" json:"sentiment_score"`
	ResponseTimeMs float64  `bson:"response_time_ms,omitempty" json:"response_time_ms,omitempty"`
}

// Message is append-only within a session; never edited once stored.
type Message struct {
	Role        string              `bson:"role" json:"role"` // user / assistant / system
	Content     string              `bson:"content" json:"content"`
	Linguistics *MessageLinguistics `bson:"linguistics,omitempty" json:"linguistics,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}

// ChatSession holds a conversation and its cumulative risk level. RiskLevel
// is monotonic non-decreasing for the lifetime of the session, and
// EscalatedToCounselor is a one-way latch (false to true only).
type ChatSession struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               string             `bson:"user_id" json:"user_id"`
	SessionType          string             `bson:"session_type" json:"session_type"` // checkin / crisis / freeform / guided
	Messages             []Message          `bson:"messages" json:"messages"`
	RiskLevel            string             `bson:"risk_level" json:"risk_level"`
	EscalatedToCounselor bool               `bson:"escalated_to_counselor" json:"escalated_to_counselor"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}
