package routes

import (
	"time"

	"campusmatch/controllers"
	"campusmatch/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public onboarding routes
	r.POST("/credential/verify",
		middlewares.RateLimit(10, time.Minute),
		controllers.VerifyCredential)
	r.POST("/account/register", controllers.Register)

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.Refresh)
	}

	// Everything below requires a session
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		users := api.Group("/users")
		{
			users.GET("/me", controllers.Me)
			users.PUT("/me", controllers.UpdateMe)
			users.GET("/:id", controllers.UserDetail)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.MyProfile)
			profile.PUT("", controllers.UpdateMyProfile)
			profile.GET("/interests", controllers.Interests)
			profile.GET("/photos", controllers.MyPhotos)
			profile.POST("/photos", controllers.UploadPhoto)
			profile.DELETE("/photos/:id", controllers.DeletePhoto)
			profile.POST("/photos/:id/primary", controllers.SetPrimaryPhoto)
		}

		matches := api.Group("/matches")
		{
			matches.GET("/candidates", controllers.Candidates)
			matches.POST("/swipe", controllers.Swipe)
			matches.GET("", controllers.MyMatches)
			matches.GET("/:id", controllers.MatchDetail)
			matches.DELETE("/:id", controllers.DeleteMatch)
			matches.GET("/:id/messages", controllers.Messages)
			matches.POST("/:id/messages", controllers.SendMessage)
			matches.POST("/:id/messages/mark-read", controllers.MarkRead)
		}

		api.GET("/conversations", controllers.Conversations)
	}

	return r
}
