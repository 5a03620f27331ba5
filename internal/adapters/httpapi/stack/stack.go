// Package stack provides the engine plugins the API is assembled from.
package stack

import (
	"log/slog"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/middleware"
)

// Logger installs structured access logging; a nil logger falls back to
// gin's text logger.
func Logger(log *slog.Logger) func(*gin.Engine) {
	return func(r *gin.Engine) {
		if log == nil {
			r.Use(gin.Logger())

			return
		}

		r.Use(middleware.AccessLog(log))
	}
}

func Recovery(log *slog.Logger) func(*gin.Engine) {
	return func(r *gin.Engine) {
		r.Use(middleware.Recovery(log))
	}
}

// Sentry re-panics after capturing; install it after Recovery so the
// recovered panic is still rendered as a problem.
func Sentry(timeout time.Duration) func(*gin.Engine) {
	return func(r *gin.Engine) {
		r.Use(sentrygin.New(sentrygin.Options{
			Repanic: true,
			Timeout: timeout,
		}))
	}
}

func RequestTimeout(d time.Duration) func(*gin.Engine) {
	return func(r *gin.Engine) {
		if d > 0 {
			r.Use(middleware.RequestTimeout(d))
		}
	}
}

func RequestID() func(*gin.Engine) {
	return func(r *gin.Engine) {
		r.Use(middleware.RequestID())
	}
}

func CORS(origins []string) func(*gin.Engine) {
	return func(r *gin.Engine) {
		if len(origins) > 0 {
			r.Use(middleware.CORS(origins))
		}
	}
}
