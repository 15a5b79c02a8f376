package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// accessLog records method, path, remote, status, bytes and duration for
// each request. Form bodies are never logged.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("remote", c.ClientIP()),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Warn("request", fields...)
			return
		}
		s.logger.Info("request", fields...)
	}
}

// recovery turns a handler panic into a 500 page instead of a dropped connection.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic serving request",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.Stack("stack"))
				c.Abort()
				s.message(c, http.StatusInternalServerError, classError,
					"Something went wrong. Please try again later.", linkHome)
			}
		}()
		c.Next()
	}
}
