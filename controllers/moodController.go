package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/models"
	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
)

// LogMood records a mood entry. Velocity against the prior entry is computed
// at creation; an anomalous drop triggers a breathing nudge.
func LogMood() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Score    int                `json:"score"`
			Emotions []string           `json:"emotions"`
			Note     string             `json:"note"`
			Context  models.MoodContext `json:"context"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood payload"})
			return
		}
		if body.Score < 1 || body.Score > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Score must be between 1 and 10"})
			return
		}
		if len(body.Note) > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Note must be under 500 characters"})
			return
		}

		entry, velocity, err := services.CreateMoodEntry(userID, body.Score, body.Emotions, body.Note, body.Context)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if velocity.IsAnomalous {
			if _, err := services.TriggerContextNudge(userID, services.NudgeContext{VelocityDrop: true}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":             entry.ID.Hex(),
			"score":          entry.Score,
			"emotions":       entry.Emotions,
			"velocity_delta": entry.VelocityDelta,
			"is_anomalous":   entry.IsAnomalous,
			"context":        entry.Context,
		})
	}
}

// GetMoodHistory returns the user's mood entries for the last ?days= days.
func GetMoodHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		days := 7
		if d := c.Query("days"); d != "" {
			if n, err := strconv.Atoi(d); err == nil && n > 0 {
				days = n
			}
		}
		since := time.Now().AddDate(0, 0, -days)
		moods, err := services.GetMoodHistory(userID, since)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"moods": moods})
	}
}

// GetMoodVelocity returns the 72-hour windowed velocity.
func GetMoodVelocity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		velocity, err := services.ComputeWindowedVelocity(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, velocity)
	}
}

// GetMoodInsights summarizes the last 30 days: average, top emotions and a
// first-half vs second-half trend.
func GetMoodInsights() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		since := time.Now().AddDate(0, 0, -30)
		moods, err := services.GetMoodHistory(userID, since)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if len(moods) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"avg_mood":      0,
				"total_entries": 0,
				"top_emotions":  []gin.H{},
				"trend":         "neutral",
			})
			return
		}

		sum := 0
		emotionCounts := map[string]int{}
		for _, m := range moods {
			sum += m.Score
			for _, e := range m.Emotions {
				emotionCounts[e]++
			}
		}
		avgMood := float64(int(float64(sum)/float64(len(moods))*10+0.5)) / 10

		type emotionCount struct {
			Emotion string `json:"emotion"`
			Count   int    `json:"count"`
		}
		topEmotions := make([]emotionCount, 0, len(emotionCounts))
		for e, n := range emotionCounts {
			topEmotions = append(topEmotions, emotionCount{e, n})
		}
		sort.Slice(topEmotions, func(i, j int) bool {
			if topEmotions[i].Count != topEmotions[j].Count {
				return topEmotions[i].Count > topEmotions[j].Count
			}
			return topEmotions[i].Emotion < topEmotions[j].Emotion
		})
		if len(topEmotions) > 5 {
			topEmotions = topEmotions[:5]
		}

		half := len(moods) / 2
		trend := "stable"
		if half > 0 {
			firstSum, secondSum := 0, 0
			for _, m := range moods[:half] {
				firstSum += m.Score
			}
			for _, m := range moods[half:] {
				secondSum += m.Score
			}
			firstAvg := float64(firstSum) / float64(half)
			secondAvg := float64(secondSum) / float64(len(moods)-half)
			if secondAvg > firstAvg+0.5 {
				trend = "improving"
			} else if secondAvg < firstAvg-0.5 {
				trend = "declining"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"avg_mood":      avgMood,
			"total_entries": len(moods),
			"top_emotions":  topEmotions,
			"trend":         trend,
		})
	}
}
