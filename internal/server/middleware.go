package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestIDMiddleware reuses an incoming X-Request-ID or assigns a UUID,
// echoes it on the response and stores it for handlers and logs.
func requestIDMiddleware() gin.HandlerFunc {
	return requestid.New(
		requestid.WithCustomHeaderStrKey(requestIDHeader),
		requestid.WithGenerator(uuid.NewString),
		requestid.WithHandler(func(c *gin.Context, id string) {
			c.Set(requestIDKey, id)
		}),
	)
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// accessLogMiddleware writes one line per request, tagged with the request
// id. Bodies are never read.
func accessLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat:   time.RFC3339,
		UTC:          true,
		DefaultLevel: zapcore.InfoLevel,
		SkipPaths:    []string{"/healthz"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String(requestIDKey, requestID(c))}
		},
	})
}

// recoveryMiddleware logs a panic with its stack and answers with the
// generic 500.
func recoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(logger, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	})
}

// timeoutMiddleware bounds the request context. Handlers observe the
// deadline through the context they pass downstream.
func timeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
