package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quillcms/quill/internal/i18n"
	"github.com/quillcms/quill/internal/log"
	"github.com/quillcms/quill/internal/metrics"
	"github.com/quillcms/quill/internal/repo"
	"github.com/quillcms/quill/internal/security"
)

const (
	requestIDKey = "X-Request-ID"
	localeKey    = "locale"
	authUserKey  = "authUser"
)

type AuthUser struct {
	UID        string
	Email      string
	Collection string
}

// RequestID honors an incoming X-Request-ID and mints one otherwise. The id
// rides on the context keys the handlers and event publisher read.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func Logging(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l := log.WithDD(c.Request.Context(), base)
		l.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.
			WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Locale resolves the request locale from Accept-Language, falling back to
// the configured default for anything the bundle does not carry.
func Locale(tr *i18n.Bundle, def string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := def
		if al := c.GetHeader("Accept-Language"); al != "" {
			tag := strings.TrimSpace(strings.Split(al, ",")[0])
			tag = strings.SplitN(tag, ";", 2)[0]
			primary := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
			if tr.Supported(primary) {
				loc = primary
			}
		}
		c.Set(localeKey, loc)
		c.Next()
	}
}

// RateLimit is a fixed-window per-IP limiter over redis. A redis outage
// never blocks requests.
func RateLimit(rds *repo.Redis, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rds == nil || perMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()
		allowed, err := rds.Allow(c.Request.Context(), key, perMin, time.Minute)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := security.ParseAccess(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(authUserKey, AuthUser{UID: claims.UID, Email: claims.Email, Collection: claims.Collection})
		c.Next()
	}
}
