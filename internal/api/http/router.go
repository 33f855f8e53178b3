package http

import (
	"net/http"

	"asociacion-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all handlers. Role enforcement lives in the
// services; the router only distinguishes public from admin paths for
// documentation purposes, every request passes through the same auth
// middleware.
func NewRouter(tm security.TokenManager, appHandler *ApplicationHandler, enrollHandler *EnrollmentHandler, adminHandler *AdminHandler, authHandler *AuthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.Use(AuthMiddleware(tm))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/applications", appHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/offerings", enrollHandler.ListOfferings).Methods(http.MethodGet)
	api.HandleFunc("/offerings/{id}", enrollHandler.GetOffering).Methods(http.MethodGet)
	api.HandleFunc("/offerings/{id}/enrollments", enrollHandler.Enroll).Methods(http.MethodPost)
	api.HandleFunc("/enrollments/{id}/cancel", enrollHandler.Cancel).Methods(http.MethodPost)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/applications", appHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}", appHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}/approve", appHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/reject", appHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/applications/{id}/confirm-payment", appHandler.ConfirmPayment).Methods(http.MethodPost)
	admin.HandleFunc("/members", adminHandler.CreateMember).Methods(http.MethodPost)
	admin.HandleFunc("/members", adminHandler.ListMembers).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id}", adminHandler.GetMember).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id}/deactivate", adminHandler.DeactivateMember).Methods(http.MethodPost)
	admin.HandleFunc("/offerings", enrollHandler.CreateOffering).Methods(http.MethodPost)
	admin.HandleFunc("/enrollments/{id}/paid", enrollHandler.MarkPaid).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return r
}
