package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propertyhub/server/internal/database"
)

// NewRouter builds the full HTTP surface: middleware, resource routes and
// the fallback error responders.
func NewRouter(db *database.Database, logger *logrus.Logger) *gin.Engine {
	handler := NewHandler(logger)

	router := gin.New()
	router.Use(gin.CustomRecovery(handler.Recovery))
	router.Use(cors.Default())
	router.Use(RequestConnection(db))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	router.GET("/", handler.Index)

	users := router.Group("/users")
	{
		users.POST("", handler.CreateUser)
		users.GET("", handler.ListUsers)
		users.GET("/:id", handler.GetUser)
		users.PATCH("/:id", handler.UpdateUser)
	}

	properties := router.Group("/properties")
	{
		properties.POST("", handler.CreateProperty)
		properties.GET("", handler.ListProperties)
		properties.GET("/:id", handler.GetProperty)
		properties.PUT("/:id", handler.UpdateProperty)
		properties.PATCH("/:id", handler.UpdateProperty)
		properties.DELETE("/:id", handler.DeleteProperty)
	}

	return router
}
