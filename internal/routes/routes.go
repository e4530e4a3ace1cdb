package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"crm-backend/internal/handlers"
	"crm-backend/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Clients   *handlers.ClientHandler
	Notes     *handlers.NoteHandler
	Reminders *handlers.ReminderHandler
	Sales     *handlers.SaleHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
}

// New configures all application routes. Everything except registration,
// login, user creation, health and swagger sits behind the bearer-token
// middleware.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// Public routes
	r.HandleFunc("/", h.Health.Root).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Health.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/users", h.Users.Create).Methods(http.MethodPost)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Protected routes
	p := r.NewRoute().Subrouter()
	p.Use(middleware.RequireAuth(jwtSecret))

	p.HandleFunc("/users", h.Users.List).Methods(http.MethodGet)

	p.HandleFunc("/clients", h.Clients.List).Methods(http.MethodGet)
	p.HandleFunc("/clients", h.Clients.Create).Methods(http.MethodPost)
	p.HandleFunc("/clients/{id}", h.Clients.Get).Methods(http.MethodGet)
	p.HandleFunc("/clients/{id}", h.Clients.Update).Methods(http.MethodPut)
	p.HandleFunc("/clients/{id}", h.Clients.Delete).Methods(http.MethodDelete)

	p.HandleFunc("/notes", h.Notes.List).Methods(http.MethodGet)
	p.HandleFunc("/notes", h.Notes.Create).Methods(http.MethodPost)
	p.HandleFunc("/notes/client/{clientId}", h.Notes.ListByClient).Methods(http.MethodGet)
	p.HandleFunc("/notes/{id}", h.Notes.Get).Methods(http.MethodGet)
	p.HandleFunc("/notes/{id}", h.Notes.Update).Methods(http.MethodPut)
	p.HandleFunc("/notes/{id}", h.Notes.Delete).Methods(http.MethodDelete)

	p.HandleFunc("/api/reminders", h.Reminders.List).Methods(http.MethodGet)
	p.HandleFunc("/api/reminders", h.Reminders.Create).Methods(http.MethodPost)
	p.HandleFunc("/api/reminders/{id}", h.Reminders.Get).Methods(http.MethodGet)
	p.HandleFunc("/api/reminders/{id}", h.Reminders.Update).Methods(http.MethodPut)
	p.HandleFunc("/api/reminders/{id}", h.Reminders.Delete).Methods(http.MethodDelete)

	p.HandleFunc("/sales", h.Sales.List).Methods(http.MethodGet)
	p.HandleFunc("/sales", h.Sales.Create).Methods(http.MethodPost)
	p.HandleFunc("/sales/{id}", h.Sales.Get).Methods(http.MethodGet)
	p.HandleFunc("/sales/{id}", h.Sales.Update).Methods(http.MethodPut)
	p.HandleFunc("/sales/{id}", h.Sales.Delete).Methods(http.MethodDelete)

	p.HandleFunc("/api/dashboard", h.Dashboard.Summary).Methods(http.MethodGet)

	return r
}
