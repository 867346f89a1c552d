package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omkar-s8203/pune-home-circle/cmd/app"
	"github.com/omkar-s8203/pune-home-circle/internal/config"
	handlers "github.com/omkar-s8203/pune-home-circle/internal/handler"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/me", handlers.RequireAuth(handler.Me)).Methods(http.MethodGet)

	// public catalog
	api.HandleFunc("/properties", handler.ListApproved).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", handler.GetProperty).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}/report", handler.FileReport).Methods(http.MethodPost)

	// owner listings
	api.HandleFunc("/properties", handlers.RequireAuth(handler.SubmitProperty)).Methods(http.MethodPost)
	api.HandleFunc("/my/properties", handlers.RequireAuth(handler.ListMyProperties)).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}/images", handlers.RequireAuth(handler.ResumePropertyImages)).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}", handlers.RequireAuth(handler.DeleteProperty)).Methods(http.MethodDelete)

	// services catalog and sponsor info
	api.HandleFunc("/services", handler.ListActiveServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}/requests", handler.CreateServiceRequest).Methods(http.MethodPost)
	api.HandleFunc("/sponsor-settings", handler.GetSponsorSettings).Methods(http.MethodGet)

	// admin; role enforcement happens in the services, routes only require a login
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/stats", handlers.RequireAuth(handler.AdminStats)).Methods(http.MethodGet)
	admin.HandleFunc("/properties", handlers.RequireAuth(handler.AdminListProperties)).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{id}/approve", handlers.RequireAuth(handler.ApproveProperty)).Methods(http.MethodPatch)
	admin.HandleFunc("/properties/{id}/reject", handlers.RequireAuth(handler.RejectProperty)).Methods(http.MethodPatch)
	admin.HandleFunc("/reports", handlers.RequireAuth(handler.ListReports)).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{id}/review", handlers.RequireAuth(handler.ReviewReport)).Methods(http.MethodPatch)
	admin.HandleFunc("/reports/{id}/resolve", handlers.RequireAuth(handler.ResolveReport)).Methods(http.MethodPatch)
	admin.HandleFunc("/blocked", handlers.RequireAuth(handler.ListBlockedContacts)).Methods(http.MethodGet)
	admin.HandleFunc("/blocked", handlers.RequireAuth(handler.BlockContact)).Methods(http.MethodPost)
	admin.HandleFunc("/blocked/{id}", handlers.RequireAuth(handler.UnblockContact)).Methods(http.MethodDelete)
	admin.HandleFunc("/services", handlers.RequireAuth(handler.AdminListServices)).Methods(http.MethodGet)
	admin.HandleFunc("/services", handlers.RequireAuth(handler.CreateService)).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", handlers.RequireAuth(handler.UpdateService)).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{id}", handlers.RequireAuth(handler.DeleteService)).Methods(http.MethodDelete)
	admin.HandleFunc("/service-requests", handlers.RequireAuth(handler.ListServiceRequests)).Methods(http.MethodGet)
	admin.HandleFunc("/service-requests/{id}", handlers.RequireAuth(handler.UpdateServiceRequest)).Methods(http.MethodPatch)
	admin.HandleFunc("/service-requests/{id}", handlers.RequireAuth(handler.DeleteServiceRequest)).Methods(http.MethodDelete)
	admin.HandleFunc("/sponsor-settings", handlers.RequireAuth(handler.UpdateSponsorSettings)).Methods(http.MethodPatch)

	chain := handlers.Chain(
		router,
		handlers.LoggingMiddleware,
		handlers.CORSMiddleware,
		handler.IdentityMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("listening on %s", addr)

	if err := http.ListenAndServe(addr, chain); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
