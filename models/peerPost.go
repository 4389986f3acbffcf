package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PeerReactions struct {
	Heart    int `bson:"heart" json:"heart"`
	Strong   int `bson:"strong" json:"strong"`
	NotAlone int `bson:"not_alone" json:"not_alone"`
}

// PeerPost is an anonymous feed post. UserID is never serialized to clients.
type PeerPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"-"`
	Content   string             `bson:"content" json:"content" validate:"required,max=280"`
	Category  string             `bson:"category" json:"category"` // loneliness, academic_pressure, anxiety, burnout, homesickness, relationship, sleep, identity, other
	Reactions PeerReactions      `bson:"reactions" json:"reactions"`
	FlagCount int                `bson:"flag_count" json:"-"`
	IsRemoved bool               `bson:"is_removed" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
