package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/helpers"
	"github.com/mryasheyt/Logic-loop-jklu/models"
	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func getUserID(c *gin.Context) string {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
		return ""
	}
	return claims.UserID
}

func getCurrentUser(c *gin.Context) *models.User {
	userID := getUserID(c)
	if userID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil
	}
	return &user
}

// CreateSession opens a new chat session for the current user.
func CreateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			SessionType string `json:"session_type"` // checkin / crisis / freeform / guided
		}
		// Body is optional; default to freeform
		_ = c.BindJSON(&body)
		sessionType := strings.ToLower(strings.TrimSpace(body.SessionType))
		switch sessionType {
		case "checkin", "crisis", "freeform", "guided":
		default:
			sessionType = "freeform"
		}

		session, err := services.CreateChatSession(userID, sessionType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"session_id":   session.ID.Hex(),
			"session_type": session.SessionType,
			"messages":     session.Messages,
			"risk_level":   session.RiskLevel,
		})
	}
}

// PostMessage runs the full message pipeline: linguistic analysis, baseline
// deviation, risk classification, AI reply, session risk escalation with
// crisis side effects, moderate-risk nudge, and the baseline update for
// low-risk conversation.
func PostMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			return
		}

		var body struct {
			Content string `json:"content"`
		}
		if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
			return
		}

		session, err := services.GetChatSession(c.Param("id"), user.User_id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		analysis := services.AnalyzeText(body.Content)
		deviation := services.ComputeDeviation(analysis, user.LinguisticBaseline)
		messageRisk := services.AssessRisk(analysis, deviation)

		now := time.Now()
		userMessage := models.Message{
			Role:    "user",
			Content: body.Content,
			Linguistics: &models.MessageLinguistics{
				SentenceCount:  analysis.SentenceCount,
				NegativeWords:  analysis.NegativeWordCount,
				CrisisKeywords: analysis.CrisisKeywords,
				SentimentScore: analysis.SentimentScore,
			},
			CreatedAt: now,
		}
		session.Messages = append(session.Messages, userMessage)

		aiResponse := services.Chat(user, session.Messages, session.SessionType)
		assistantMessage := models.Message{
			Role:      "assistant",
			Content:   aiResponse,
			CreatedAt: time.Now(),
		}
		session.Messages = append(session.Messages, assistantMessage)

		// Escalate-only session risk; fires crisis flag + realtime alert once
		crisisTriggered, escErr := services.AdvanceSessionRisk(session, messageRisk)
		if escErr != nil {
			// The latch already won: log and keep going, the risk level itself
			// must still be persisted below.
			log.Printf("Crisis escalation side effect error for user %s: %v", user.User_id, escErr)
		}

		nudgeTriggered := false
		if session.RiskLevel == models.RiskModerate {
			if _, err := services.TriggerContextNudge(user.User_id, services.NudgeContext{VelocityDrop: true}); err != nil {
				log.Printf("Nudge trigger error: %v", err)
			} else {
				nudgeTriggered = true
			}
		}

		if services.ShouldUpdateBaseline(session.RiskLevel) {
			if _, err := services.UpdateUserBaseline(user.User_id, analysis); err != nil {
				log.Printf("Baseline update error: %v", err)
			}
		}

		if err := services.AppendMessages(session.ID, session.RiskLevel, userMessage, assistantMessage); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":          gin.H{"role": "assistant", "content": aiResponse},
			"risk_level":       session.RiskLevel,
			"nudge_triggered":  nudgeTriggered,
			"crisis_triggered": crisisTriggered,
		})
	}
}

// GetChatHistory returns the user's sessions from the last 90 days.
func GetChatHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		since := time.Now().AddDate(0, 0, -90)
		sessions, err := services.GetChatHistory(userID, since)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}
