package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feedbackhub/pkg/logger"
	"feedbackhub/pkg/metrics"
)

// SetupRoutes wires all endpoints. Submit and the plain listing are public;
// delete, update and the admin listing require the admin token.
func SetupRoutes(feedbackHandler *FeedbackHandler, authHandler *AuthHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("feedback-service"))

	// The API fronts a browser SPA
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Customer Feedback System API is running!",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "feedback-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/feedback", feedbackHandler.Submit)
		api.GET("/feedback", feedbackHandler.List)

		protected := api.Group("")
		protected.Use(authMiddleware.Authorize())
		{
			protected.PUT("/feedback/:id", feedbackHandler.Update)
			protected.PATCH("/feedback/:id", feedbackHandler.Update)
			protected.DELETE("/feedback/:id", feedbackHandler.Delete)
			protected.GET("/admin/feedback", feedbackHandler.AdminOverview)
		}
	}

	return router
}
