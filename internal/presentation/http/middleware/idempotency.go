package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a mutation retried with the same
// Idempotency-Key by the same session. Only 2xx responses are stored so a
// failed submit can be retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch && c.Request.Method != http.MethodDelete {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		session := GetSession(c)
		if key == "" || session == nil {
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, session.ID)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		endpoint := c.Request.Method + " " + c.Request.URL.Path
		if existing != nil && existing.Endpoint == endpoint {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, existing.ContentType, existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		now := time.Now()
		ikey := &entity.IdempotencyKey{
			Key:          key,
			SessionID:    session.ID,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.Bytes(),
			ContentType:  c.Writer.Header().Get("Content-Type"),
			CreatedAt:    now,
			ExpiresAt:    now.Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
