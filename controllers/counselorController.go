package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/models"
	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var alertProjection = bson.D{
	{Key: "name", Value: 1}, {Key: "email", Value: 1}, {Key: "university", Value: 1},
	{Key: "burnout_score", Value: 1}, {Key: "burnout_risk_level", Value: 1},
	{Key: "is_flagged_for_crisis", Value: 1}, {Key: "user_id", Value: 1}, {Key: "created_at", Value: 1},
}

// GetCrisisAlerts lists every user currently flagged for crisis.
func GetCrisisAlerts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetProjection(alertProjection)
		cursor, err := userCollection.Find(ctx, bson.M{"is_flagged_for_crisis": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		var alerts []models.User
		if err := cursor.All(ctx, &alerts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
	}
}

// ResolveCrisis clears a user's crisis flag. Only a counselor action clears
// the flag; it never expires on its own.
func ResolveCrisis() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.FlagUserForCrisis(c.Param("userId"), false); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Crisis resolved"})
	}
}

// GetCaseload lists the students assigned to the current counselor.
func GetCaseload() gin.HandlerFunc {
	return func(c *gin.Context) {
		counselorID := getUserID(c)
		if counselorID == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetProjection(alertProjection)
		cursor, err := userCollection.Find(ctx, bson.M{"assigned_counselor": counselorID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		var students []models.User
		if err := cursor.All(ctx, &students); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"students": students})
	}
}
