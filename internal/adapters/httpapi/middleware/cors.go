package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowedHeaders  = "Content-Type, Authorization, X-Request-ID"
	exposeHeaders   = "Location, X-Request-ID"
	preflightMaxAge = "600"
)

// allowedMethods mirrors the routes: links are created, read and deleted.
var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

// CORS allows the listed origins; "*" allows any. Preflights from other
// origins, or asking for a method no route serves, are rejected with 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowedOrigins)
	methods := strings.Join(allowedMethods, ",")

	return func(c *gin.Context) {
		origin := normalizeOrigin(c.GetHeader("Origin"))
		if origin == "" {
			c.Next()

			return
		}

		allowOrigin, ok := policy.match(origin)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			if !ok || !methodAllowed(c.GetHeader("Access-Control-Request-Method")) {
				c.AbortWithStatus(http.StatusForbidden)

				return
			}

			policy.writeOrigin(c, allowOrigin)
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			c.Header("Access-Control-Max-Age", preflightMaxAge)
			c.AbortWithStatus(http.StatusNoContent)

			return
		}

		if ok {
			policy.writeOrigin(c, allowOrigin)
			c.Header("Access-Control-Expose-Headers", exposeHeaders)
		}

		c.Next()
	}
}

type corsPolicy struct {
	allowAll bool
	allowed  map[string]struct{}
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	policy := corsPolicy{allowed: make(map[string]struct{}, len(allowedOrigins))}

	for _, origin := range allowedOrigins {
		switch origin = normalizeOrigin(origin); origin {
		case "":
		case "*":
			policy.allowAll = true
		default:
			policy.allowed[origin] = struct{}{}
		}
	}

	return policy
}

// match returns the value for Access-Control-Allow-Origin.
func (p corsPolicy) match(origin string) (string, bool) {
	if p.allowAll {
		return "*", true
	}

	if _, ok := p.allowed[origin]; ok {
		return origin, true
	}

	return "", false
}

func (p corsPolicy) writeOrigin(c *gin.Context, allowOrigin string) {
	c.Header("Access-Control-Allow-Origin", allowOrigin)
	if !p.allowAll {
		c.Header("Vary", "Origin")
	}
}

func methodAllowed(m string) bool {
	m = strings.ToUpper(strings.TrimSpace(m))
	for _, allowed := range allowedMethods {
		if m == allowed {
			return true
		}
	}

	return false
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}
