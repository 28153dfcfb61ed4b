package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/wedding-api/internal/apperror"
)

// RequestLogger logs every request with method, path, status, latency
// and client IP.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// ErrorHandler is the single place errors become client responses.
// Handlers and middleware attach errors to the context; after the chain
// unwinds, the last error is logged with its request context and
// written as {"error": message} with the status it carries.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status := apperror.StatusOf(last.Err)

		event := log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("query", c.Request.URL.RawQuery)
		for _, p := range c.Params {
			event = event.Str("param_"+p.Key, p.Value)
		}
		if body, ok := c.Get(ContextRawBody); ok {
			event = event.Interface("body", body)
		}
		event.Msg(last.Err.Error())

		if !c.Writer.Written() {
			c.JSON(status, gin.H{"error": last.Err.Error()})
		}
	}
}
