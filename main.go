package main

import (
	"log"
	"net/http"
	"os"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/cron"
	"github.com/mryasheyt/Logic-loop-jklu/helpers"
	"github.com/mryasheyt/Logic-loop-jklu/realtime"
	"github.com/mryasheyt/Logic-loop-jklu/routes"
	"github.com/mryasheyt/Logic-loop-jklu/services"

	"github.com/gin-gonic/gin"
)

func main() {

	log.Println("Starting MindMate backend...")

	key := config.GenerateRandomKey()
	helpers.SetJWTKey(key)

	// Realtime crisis-alert hub for counselor dashboards
	hub := realtime.NewHub()
	services.SetCrisisEmitter(hub)

	//Init gin router
	r := gin.Default()

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", frontend)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := r.Group("/api")
	routes.SetupRoutes(api, hub)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"alert_subscribers": hub.ClientCount(),
		})
	})

	scheduler := cron.StartJobs()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
