package controllers

import (
	"net/http"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
)

// CreateBurnoutCheckin records today's check-in and recomputes the 7-day
// rolling burnout score. At most one check-in per calendar day.
func CreateBurnoutCheckin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			RestedScore     int   `json:"rested_score"`
			MotivationScore int   `json:"motivation_score"`
			TookBreaks      *bool `json:"took_breaks"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkin payload"})
			return
		}
		if body.RestedScore < 1 || body.RestedScore > 5 ||
			body.MotivationScore < 1 || body.MotivationScore > 5 ||
			body.TookBreaks == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rested_score and motivation_score must be 1-5 and took_breaks is required"})
			return
		}

		alreadyDone, err := services.HasCheckedInToday(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if alreadyDone {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already checked in today"})
			return
		}

		checkin, err := services.CreateBurnoutCheckin(userID, body.RestedScore, body.MotivationScore, *body.TookBreaks)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		result, err := services.UpdateBurnoutScore(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		score := checkin.ComputedBurnout
		riskLevel := "low"
		if result != nil {
			score = result.Score
			riskLevel = result.RiskLevel
		}

		if result != nil && result.Score > 70 {
			if _, err := services.TriggerContextNudge(userID, services.NudgeContext{HighBurnout: true}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"checkin":    checkin,
			"score":      score,
			"risk_level": riskLevel,
		})
	}
}

// GetBurnoutScore returns the user's current rolling score and tier.
func GetBurnoutScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			return
		}
		checkedInToday, err := services.HasCheckedInToday(user.User_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"score":            user.BurnoutScore,
			"risk_level":       user.BurnoutRiskLevel,
			"checked_in_today": checkedInToday,
		})
	}
}

// GetBurnoutTrend returns 30 days of check-ins, oldest first.
func GetBurnoutTrend() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		since := time.Now().AddDate(0, 0, -30)
		trend, err := services.GetBurnoutTrend(userID, since)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"trend": trend})
	}
}
