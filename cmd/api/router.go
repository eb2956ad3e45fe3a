package main

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/uploads/:filename", serveUpload(c))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck(c))

		authors := api.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.GetAll)
			authors.GET("/:id", c.AuthorHandler.GetByID)
			authors.POST("", c.AuthorHandler.Create)
			authors.PUT("/:id", c.AuthorHandler.Update)
			authors.DELETE("/:id", c.AuthorHandler.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", c.CategoryHandler.GetAll)
			categories.GET("/:id", c.CategoryHandler.GetByID)
			categories.POST("", c.CategoryHandler.Create)
			categories.PUT("/:id", c.CategoryHandler.Update)
			categories.DELETE("/:id", c.CategoryHandler.Delete)
		}

		books := api.Group("/books")
		{
			books.GET("", c.BookHandler.GetAll)
			books.GET("/:id", c.BookHandler.GetByID)
			books.POST("", c.BookHandler.Create)
			books.PUT("/:id", c.BookHandler.Update)
			books.DELETE("/:id", c.BookHandler.Delete)
		}
	}

	return router
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "ok"
		dbStatus := "up"
		cacheStatus := "up"

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			dbStatus = "down"
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":   status,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}

// serveUpload streams a stored cover image back to the client.
func serveUpload(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filename := ctx.Param("filename")

		object, contentType, err := c.Storage.Open(ctx.Request.Context(), filename)
		if err != nil {
			response.Error(ctx, http.StatusNotFound, "File not found")
			return
		}
		defer object.Close()

		ctx.Header("Content-Type", contentType)
		ctx.Header("Cache-Control", "public, max-age=86400")
		ctx.Status(http.StatusOK)
		_, _ = io.Copy(ctx.Writer, object)
	}
}
