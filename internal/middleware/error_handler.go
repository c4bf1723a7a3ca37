package middleware

import (
	"errors"
	"net/http"
	"time"

	"abbafoods/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrorHandler answers for errors the handlers pushed with c.Error. Write
// conflicts that slipped past the services become 409; everything else is a
// 500 with a fixed message and the cause only in the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := http.StatusInternalServerError, apierror.Interno()
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			status, body = http.StatusConflict, apierror.New("Ya existe un registro con esos datos")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			status, body = http.StatusConflict, apierror.New("El registro está en uso por otro dato")
		}

		ev := log.Error()
		if status != http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Err(err).
			Msg("request failed")

		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a panic into a 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.FullPath()).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Interno())
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
