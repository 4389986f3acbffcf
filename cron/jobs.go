package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"
	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// StartJobs schedules the recurring maintenance jobs and returns the running
// scheduler so the caller can Stop it on shutdown.
func StartJobs() *cron.Cron {
	c := cron.New()

	// Daily burnout recalculation at midnight
	c.AddFunc("0 0 * * *", func() {
		log.Println("[CRON] Running daily burnout recalculation...")
		users, err := allUserIDs(bson.M{})
		if err != nil {
			log.Printf("[CRON] Burnout recalculation error: %v", err)
			return
		}
		for _, userID := range users {
			if _, err := services.UpdateBurnoutScore(userID); err != nil {
				log.Printf("[CRON] Burnout update failed for %s: %v", userID, err)
			}
		}
		log.Printf("[CRON] Updated burnout scores for %d users", len(users))
	})

	// Nudge delivery every hour, for users whose preferred time matches
	c.AddFunc("0 * * * *", func() {
		log.Println("[CRON] Checking nudge delivery...")
		currentHour := fmt.Sprintf("%02d", time.Now().Hour())
		users, err := allUsers(bson.M{
			"nudges_enabled": true,
			"nudge_time":     bson.M{"$regex": "^" + currentHour + ":"},
		})
		if err != nil {
			log.Printf("[CRON] Nudge delivery error: %v", err)
			return
		}
		for i := range users {
			nudgeCtx := services.NudgeContext{}
			if users[i].BurnoutScore > 70 {
				nudgeCtx.HighBurnout = true
			}
			if _, err := services.TriggerContextNudge(users[i].User_id, nudgeCtx); err != nil {
				log.Printf("[CRON] Nudge delivery failed for %s: %v", users[i].User_id, err)
			}
		}
		log.Printf("[CRON] Delivered nudges to %d users", len(users))
	})

	c.Start()
	log.Println("[CRON] Scheduled jobs started")
	return c
}

func allUsers(filter bson.M) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	coll := config.OpenCollection("users")
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.User
	err = cursor.All(ctx, &out)
	return out, err
}

func allUserIDs(filter bson.M) ([]string, error) {
	users, err := allUsers(filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].User_id)
	}
	return ids, nil
}
