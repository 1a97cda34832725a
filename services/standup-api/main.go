package main

import (
	"log/slog"
	"time"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/apihelpers"
	"github.com/Scrumease/Scrum-Ease-Web-API/services/standup-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserJWTConfig.SignKey,
		conf.UserJWTConfig.ExpiresIn,
		messagingDBService,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddStandupAPI(v1Root)
	v1APIHandlers.AddMessagingAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "standup-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Standup API on port " + conf.GinConfig.Port)
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited Standup API", slog.String("error", err.Error()))
		return
	}
}
