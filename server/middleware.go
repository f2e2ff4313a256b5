package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/code-harsh006/new-backend/core/ratelimit"
	"github.com/code-harsh006/new-backend/logger"
)

// corsMiddleware adds permissive CORS headers and answers preflights.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware logs one line per request.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("remoteAddr", r.RemoteAddr),
			logger.Duration("elapsed", time.Since(start)))
	})
}

// clientIP extracts the caller's address, preferring X-Forwarded-For when
// a proxy sits in front.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitByIP rejects requests exceeding the limiter's window, keyed by
// client IP. A limiter failure fails open: rate limiting protects the
// service but must not take it down.
func (h *APIHandler) RateLimitByIP(limiter ratelimit.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, err := limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", logger.ErrorField(err))
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			writeMessage(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RateLimitByUser rejects requests exceeding the limiter's window, keyed
// by the authenticated user. Must run after AuthMiddleware.
func (h *APIHandler) RateLimitByUser(limiter ratelimit.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		allowed, err := limiter.Allow(r.Context(), strconv.FormatInt(userID, 10))
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", logger.ErrorField(err))
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			writeMessage(w, http.StatusTooManyRequests, "Upload limit reached, try again later")
			return
		}
		next.ServeHTTP(w, r)
	}
}
