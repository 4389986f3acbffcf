package controllers

import (
	"net/http"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
)

type hotline struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	Availability string `json:"availability"`
	Desc         string `json:"desc"`
}

var crisisResources = []hotline{
	{"iCall", "9152987821", "Mon–Sat 8am–10pm", "Professional counseling service by TISS"},
	{"Vandrevala Foundation", "1860-2662-345", "24/7", "Mental health helpline"},
	{"iMind", "4066-2222", "24/7", "Emotional support helpline"},
	{"NIMHANS", "080-46110007", "24/7", "National mental health helpline"},
}

var crisisHotlines = append(crisisResources,
	hotline{"Snehi", "044-24640050", "24/7", "Emotional support"},
	hotline{"AASRA", "9820466726", "24/7", "Crisis intervention"},
)

// EscalateCrisis lets a user self-escalate: flags the account and alerts
// subscribed counselor dashboards.
func EscalateCrisis(emitter services.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			return
		}
		if err := services.FlagUserForCrisis(user.User_id, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if emitter != nil {
			name := ""
			if user.Name != nil {
				name = *user.Name
			}
			emitter.Emit("crisis:escalated", map[string]interface{}{
				"userId":    user.User_id,
				"name":      name,
				"timestamp": time.Now(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"message": "Crisis escalated. A counselor has been notified."})
	}
}

// GetCrisisResources lists counseling resources.
func GetCrisisResources() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"resources": crisisResources})
	}
}

// GetCrisisHotlines lists all crisis hotlines.
func GetCrisisHotlines() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"hotlines": crisisHotlines})
	}
}
