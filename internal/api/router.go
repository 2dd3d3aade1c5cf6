package api

import (
	"html/template"
	"net/http"

	"flightlog-service/internal/handler"
	"flightlog-service/internal/middleware"
	"flightlog-service/pkg/logger"
	"flightlog-service/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires every endpoint of the service
func SetupRouter(
	pages *handler.PageHandler,
	flights *handler.FlightHandler,
	statsHandler *handler.StatsHandler,
	assist *handler.AssistHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Server-rendered timeline
	r.GET("/", pages.Index)

	api := r.Group("/api/v1")
	{
		f := api.Group("/flights")
		{
			f.GET("", flights.List)
			f.POST("", flights.Create)
			f.DELETE("/:id", flights.Delete)
			f.GET("/export", flights.Export)
			f.POST("/import", flights.Import)
		}

		s := api.Group("/stats")
		{
			s.GET("/years", statsHandler.Years)
			s.GET("/scope", statsHandler.Scope)
			s.GET("/recaps", statsHandler.Recaps)
			s.GET("/endpoints", statsHandler.Endpoints)
		}

		a := api.Group("/assist")
		{
			a.POST("/parse", assist.Parse)
			a.POST("/profile", assist.Profile)
		}
	}

	return r
}
