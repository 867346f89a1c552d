package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the caller's identity placed on the request context by
// IdentityMiddleware. Requests that never passed through the middleware, or
// carried no usable token, resolve to the anonymous identity.
func identityFrom(r *http.Request) service.Identity {
	if ident, ok := r.Context().Value(identityKey).(service.Identity); ok {
		return ident
	}
	return service.Anonymous
}

// IdentityMiddleware resolves the bearer token into an identity once per
// request. A missing or invalid token is not an error here: the request
// continues as anonymous and the handlers decide what that caller may do.
func (h *Handlers) IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := service.Anonymous

		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if resolved, err := h.Auth.IdentityFromToken(token); err == nil {
				ident = resolved
			}
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous callers before the handler runs. Role checks
// beyond "logged in" live in the service layer.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r).IsAuthenticated() {
			writeError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

type Middleware func(http.Handler) http.Handler

// Chain wraps h so the first middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
