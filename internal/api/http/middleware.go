package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/metrics"
	"asociacion-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated caller, or
// domain.Anonymous when the request carried no valid token.
func PrincipalFromContext(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous
}

// AuthMiddleware turns a bearer token into an explicit Principal on
// the request context. A missing token leaves the caller anonymous;
// per-route admin gating happens in the services, which take the
// principal as an argument instead of reading ambient state.
func AuthMiddleware(tm security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			principal := domain.Principal{
				UserID:         claims.UserID,
				Email:          claims.Email,
				Role:           claims.Role,
				MembershipType: claims.MembershipType,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return header
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware records request count and latency per route.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
