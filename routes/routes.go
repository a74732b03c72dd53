package routes

import (
	"net/http"

	"citybrain/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(analyzer handlers.Analyzer, replier handlers.Replier, allowedOrigin string) *gin.Engine {
	r := gin.Default()
	r.Use(cors(allowedOrigin))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "City Brain is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/analyze-city", func(c *gin.Context) {
		handlers.AnalyzeCity(c, analyzer)
	})
	r.POST("/chat", func(c *gin.Context) {
		handlers.Chat(c, replier)
	})

	return r
}

// cors lets the dashboard, served from another origin, call the API.
func cors(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "X-Analysis-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
