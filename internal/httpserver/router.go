// filepath: internal/httpserver/router.go
package httpserver

import (
	"net/http"

	"gallerysaver/internal/api/handlers"
	"gallerysaver/internal/audit"
	"gallerysaver/internal/services/auth"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router. am may be nil, in which case the
// API is served without authentication.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})

	// Public Endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	if am != nil {
		apiRouter.Use(am.AuthMiddleware) // This will check for JWT *or* Basic
	}
	apiRouter.Use(maxBytesMiddleware(h.Cfg.MaxRequestSizeBytes))

	apiRouter.HandleFunc("/token", h.GetToken).Methods("POST")
	addGalleryRoutes(apiRouter, h)
	apiRouter.HandleFunc("/housekeeping", h.TriggerHousekeeping).Methods("POST")

	return r
}

// addGalleryRoutes configures the save endpoints and the method channel.
func addGalleryRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/gallery/image", h.SaveImage).Methods("POST")
	r.HandleFunc("/gallery/file", h.SaveFile).Methods("POST")
	r.HandleFunc("/method/{name}", h.InvokeMethod).Methods("POST")
}

// requestIDMiddleware tags each request with an ID that audit events carry.
// An incoming X-Request-ID header is kept.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(audit.WithRequestID(r.Context(), id)))
	})
}

// maxBytesMiddleware caps request bodies. limit <= 0 disables the cap.
func maxBytesMiddleware(limit int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
