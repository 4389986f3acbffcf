package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetPendingNudges returns the latest undismissed nudges.
func GetPendingNudges() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		nudges, err := services.GetPendingNudges(userID, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"nudges": nudges})
	}
}

// DismissNudge marks a nudge dismissed, recording whether it helped.
func DismissNudge() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			NudgeID    string `json:"nudge_id"`
			WasHelpful *bool  `json:"was_helpful"`
		}
		if err := c.BindJSON(&body); err != nil || body.NudgeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nudge_id is required"})
			return
		}
		err := services.DismissNudge(userID, body.NudgeID, body.WasHelpful)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nudge not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Nudge dismissed"})
	}
}

// UpdateNudgePreferences sets nudge delivery preferences.
func UpdateNudgePreferences() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			NudgesEnabled *bool   `json:"nudges_enabled"`
			NudgeTime     *string `json:"nudge_time"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
			return
		}

		set := bson.D{{Key: "updated_at", Value: time.Now()}}
		if body.NudgesEnabled != nil {
			set = append(set, bson.E{Key: "nudges_enabled", Value: *body.NudgesEnabled})
		}
		if body.NudgeTime != nil && *body.NudgeTime != "" {
			if _, err := time.Parse("15:04", *body.NudgeTime); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "nudge_time must be HH:MM"})
				return
			}
			set = append(set, bson.E{Key: "nudge_time", Value: *body.NudgeTime})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.D{{Key: "$set", Value: set}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Preferences updated"})
	}
}
