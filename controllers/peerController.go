package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var peerCollection = config.OpenCollection("peer_posts")

const peerPostTTL = 7 * 24 * time.Hour

// Posts reaching this many flags are hidden from the feed pending review.
const autoRemoveFlagCount = 3

var peerCategories = map[string]struct{}{
	"loneliness": {}, "academic_pressure": {}, "anxiety": {}, "burnout": {},
	"homesickness": {}, "relationship": {}, "sleep": {}, "identity": {}, "other": {},
}

// CreatePeerPost publishes an anonymous post to the peer feed.
func CreatePeerPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Content  string `json:"content"`
			Category string `json:"category"`
		}
		if err := c.BindJSON(&body); err != nil || body.Content == "" || len(body.Content) > 280 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required and must be under 280 characters"})
			return
		}
		if _, ok := peerCategories[body.Category]; !ok {
			body.Category = "other"
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		now := time.Now()
		post := models.PeerPost{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Content:   body.Content,
			Category:  body.Category,
			ExpiresAt: now.Add(peerPostTTL),
			CreatedAt: now,
		}
		if _, err := peerCollection.InsertOne(ctx, post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

// GetPeerFeed returns the latest posts, optionally filtered by category.
// Removed and expired posts never appear.
func GetPeerFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		filter := bson.M{
			"is_removed": false,
			"expires_at": bson.M{"$gt": time.Now()},
		}
		if category := c.Query("category"); category != "" && category != "all" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(50)
		cursor, err := peerCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		var posts []models.PeerPost
		if err := cursor.All(ctx, &posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})
	}
}

// ReactToPeerPost increments one of the reaction counters.
func ReactToPeerPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			ReactionType string `json:"reaction_type"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reaction payload"})
			return
		}
		var field string
		switch body.ReactionType {
		case "heart":
			field = "reactions.heart"
		case "strong":
			field = "reactions.strong"
		case "notAlone":
			field = "reactions.not_alone"
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction type"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var post models.PeerPost
		err = peerCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: 1}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&post)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reactions": post.Reactions})
	}
}

// FlagPeerPost reports a post; enough flags hide it from the feed.
func FlagPeerPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var post models.PeerPost
		err = peerCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.D{{Key: "$inc", Value: bson.D{{Key: "flag_count", Value: 1}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&post)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		if post.FlagCount >= autoRemoveFlagCount && !post.IsRemoved {
			_, err = peerCollection.UpdateOne(ctx, bson.M{"_id": oid},
				bson.D{{Key: "$set", Value: bson.D{{Key: "is_removed", Value: true}}}})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post reported"})
	}
}
