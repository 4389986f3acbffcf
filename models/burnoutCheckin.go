package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BurnoutCheckin is one self-report per user per calendar day.
// ComputedBurnout is derived once at creation and never recomputed on read.
type BurnoutCheckin struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	RestedScore     int                `bson:"rested_score" json:"rested_score" validate:"required,min=1,max=5"`
	MotivationScore int                `bson:"motivation_score" json:"motivation_score" validate:"required,min=1,max=5"`
	TookBreaks      bool               `bson:"took_breaks" json:"took_breaks"`
	ComputedBurnout int                `bson:"computed_burnout" json:"computed_burnout"` // 0-100
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
