package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateJournalEntry appends an entry to the user's embedded journal.
func CreateJournalEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Content   string `json:"content"`
			MoodScore int    `json:"mood_score"`
		}
		if err := c.BindJSON(&body); err != nil || body.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
			return
		}
		if body.MoodScore != 0 && (body.MoodScore < 1 || body.MoodScore > 10) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mood_score must be between 1 and 10"})
			return
		}

		entry := models.JournalEntry{
			ID:        primitive.NewObjectID(),
			Content:   body.Content,
			MoodScore: body.MoodScore,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userID},
			bson.D{{Key: "$push", Value: bson.D{{Key: "journal_entries", Value: entry}}}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// GetJournalEntries returns the user's journal, newest first.
func GetJournalEntries() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			return
		}
		entries := user.JournalEntries
		if entries == nil {
			entries = []models.JournalEntry{}
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// UpdateJournalEntry edits an entry's content or mood score.
func UpdateJournalEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		var body struct {
			Content   *string `json:"content"`
			MoodScore *int    `json:"mood_score"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal payload"})
			return
		}

		set := bson.D{}
		if body.Content != nil && *body.Content != "" {
			set = append(set, bson.E{Key: "journal_entries.$.content", Value: *body.Content})
		}
		if body.MoodScore != nil {
			if *body.MoodScore < 1 || *body.MoodScore > 10 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "mood_score must be between 1 and 10"})
				return
			}
			set = append(set, bson.E{Key: "journal_entries.$.mood_score", Value: *body.MoodScore})
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := userCollection.UpdateOne(ctx,
			bson.M{"user_id": userID, "journal_entries._id": entryID},
			bson.D{{Key: "$set", Value: set}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry updated"})
	}
}

// DeleteJournalEntry removes an entry.
func DeleteJournalEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := userCollection.UpdateOne(ctx,
			bson.M{"user_id": userID},
			bson.D{{Key: "$pull", Value: bson.D{{Key: "journal_entries", Value: bson.D{{Key: "_id", Value: entryID}}}}}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.ModifiedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}
