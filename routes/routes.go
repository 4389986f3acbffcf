package routes

import (
	"github.com/mryasheyt/Logic-loop-jklu/controllers"
	"github.com/mryasheyt/Logic-loop-jklu/middleware"
	"github.com/mryasheyt/Logic-loop-jklu/realtime"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.RouterGroup, hub *realtime.Hub) {
	router.POST("/signup", controllers.Signup())
	router.POST("/login", controllers.Login())
	router.POST("/forgot-password", controllers.ForgotPassword())
	router.POST("/reset-password", controllers.ResetPassword())

	// Crisis resources are public: no login wall in front of hotlines
	router.GET("/crisis/resources", controllers.GetCrisisResources())
	router.GET("/crisis/hotlines", controllers.GetCrisisHotlines())

	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		// Current user (all authenticated)
		protected.GET("/me", controllers.GetMe())

		// ADMIN only
		protected.GET("/users",
			middleware.Authorize("ADMIN"),
			controllers.GetUsers(),
		)

		// USER (self) + ADMIN
		protected.GET("/user/:id",
			middleware.Authorize("ADMIN", "USER"),
			controllers.GetUser(),
		)

		// Chat companion
		protected.POST("/chat/session", controllers.CreateSession())
		protected.POST("/chat/session/:id/message", controllers.PostMessage())
		protected.GET("/chat/history", controllers.GetChatHistory())

		// Mood tracking
		protected.POST("/mood/log", controllers.LogMood())
		protected.GET("/mood/history", controllers.GetMoodHistory())
		protected.GET("/mood/velocity", controllers.GetMoodVelocity())
		protected.GET("/mood/insights", controllers.GetMoodInsights())

		// Burnout check-ins
		protected.POST("/burnout/checkin", controllers.CreateBurnoutCheckin())
		protected.GET("/burnout/score", controllers.GetBurnoutScore())
		protected.GET("/burnout/trend", controllers.GetBurnoutTrend())

		// Nudges
		protected.GET("/nudges/pending", controllers.GetPendingNudges())
		protected.POST("/nudges/dismiss", controllers.DismissNudge())
		protected.PUT("/nudges/preferences", controllers.UpdateNudgePreferences())

		// Peer feed
		protected.POST("/peer/post", controllers.CreatePeerPost())
		protected.GET("/peer/feed", controllers.GetPeerFeed())
		protected.POST("/peer/:id/react", controllers.ReactToPeerPost())
		protected.POST("/peer/:id/flag", controllers.FlagPeerPost())

		// Journal
		protected.POST("/journal/entry", controllers.CreateJournalEntry())
		protected.GET("/journal/entries", controllers.GetJournalEntries())
		protected.PUT("/journal/:id", controllers.UpdateJournalEntry())
		protected.DELETE("/journal/:id", controllers.DeleteJournalEntry())

		// Crisis self-escalation
		protected.POST("/crisis/escalate", controllers.EscalateCrisis(hub))

		// Counselor dashboard
		protected.GET("/counselor/alerts",
			middleware.Authorize("COUNSELOR", "ADMIN"),
			controllers.GetCrisisAlerts(),
		)
		protected.POST("/counselor/resolve/:userId",
			middleware.Authorize("COUNSELOR", "ADMIN"),
			controllers.ResolveCrisis(),
		)
		protected.GET("/counselor/caseload",
			middleware.Authorize("COUNSELOR", "ADMIN"),
			controllers.GetCaseload(),
		)

		// Counselor realtime alert stream
		protected.GET("/ws/alerts",
			middleware.Authorize("COUNSELOR", "ADMIN"),
			hub.ServeWS(),
		)
	}
}
