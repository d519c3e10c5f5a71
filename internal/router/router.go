package router

import (
	"net/http"

	"futstore-be/internal/handler"
	"futstore-be/internal/logger"
	"futstore-be/internal/middleware"
	"futstore-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	History *handler.HistoryHandler
	User    *handler.UserHandler
}

func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Idempotency-Key, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Setup(h *Handlers, allowedOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(CORSMiddleware(allowedOrigin))
	router.Use(logger.RequestIDMiddleware())
	router.Use(logger.LoggingMiddleware())
	router.Use(middleware.AuthMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		api.GET("/products", h.Product.List)
		api.GET("/products/:id", h.Product.Get)

		api.POST("/checkout", middleware.StrictRateLimitMiddleware(), h.Order.Checkout)
		api.GET("/orders/:reference", h.Order.Get)

		api.POST("/auth/login", middleware.StrictRateLimitMiddleware(), h.User.Login)

		admin := api.Group("/admin", middleware.RequireRole(utils.RoleAdmin, utils.RoleSuperAdmin))
		{
			admin.POST("/products", h.Product.Create)
			admin.PUT("/products/:id", h.Product.Update)
			admin.DELETE("/products/:id", h.Product.Delete)

			admin.GET("/orders", h.Order.List)
			admin.PUT("/orders/:id/status", h.Order.UpdateStatus)
			admin.POST("/orders/reconcile", h.Order.Reconcile)

			admin.GET("/history", h.History.List)
		}

		super := api.Group("/admin", middleware.RequireRole(utils.RoleSuperAdmin))
		{
			super.DELETE("/history", h.History.Clear)
			super.POST("/auth/register", h.User.Register)
		}
	}

	return router
}
