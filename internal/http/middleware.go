package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/service"
)

const (
	sessionCookie = "session_id"
	sessionKey    = "session"
)

// requestLogger пишет строку лога на каждый запрос через zap
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// withSession открывает сессию по cookie; неизвестный или битый id заменяется новым
func (s *Server) withSession(c *gin.Context) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}
	c.Set(sessionKey, s.sessions.Open(id))
	c.Next()
}

func session(c *gin.Context) *service.Session {
	return c.MustGet(sessionKey).(*service.Session)
}
