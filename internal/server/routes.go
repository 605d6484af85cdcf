package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/appointly/scheduler-assistant/internal/common"
)

// NewRouter builds the gin engine with the two routes this service exposes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET("/healthz", h.Health)
	r.POST("/parse", h.Parse)
	return r
}

// requestID tags every request context so pipeline log events correlate with
// the HTTP request that triggered them.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
