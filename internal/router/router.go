package router

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/handler"
	"github.com/Dan9191/finance-tracker/internal/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type crudRoutes interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Sync(http.ResponseWriter, *http.Request)
	Patch(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// New builds the route table with CORS, logging and recovery applied.
func New(h *handler.Handler, tokens middleware.TokenParser, log *logrus.Logger, frontendURL string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	r.HandleFunc("/health", h.Health).Methods("GET")

	// Public routes
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/google/url", h.GoogleURL).Methods("GET")
	r.HandleFunc("/auth/google/callback", h.GoogleCallback).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(tokens, log))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")

	crud(authRouter, "/incomes", h.Incomes)
	crud(authRouter, "/expenses", h.Expenses)
	crud(authRouter, "/assets", h.Assets)
	crud(authRouter, "/liabilities", h.Liabilities)
	crud(authRouter, "/goals", h.Goals)

	authRouter.HandleFunc("/ai/assist", h.Assist).Methods("POST")
	authRouter.HandleFunc("/ai/chat", h.Chat).Methods("POST")
	authRouter.HandleFunc("/ai/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/market/key-rate", h.KeyRate).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{frontendURL}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)
	return middleware.Logging(log)(cors(r))
}

func crud(r *mux.Router, prefix string, res crudRoutes) {
	r.HandleFunc(prefix, res.List).Methods("GET")
	r.HandleFunc(prefix, res.Create).Methods("POST")
	r.HandleFunc(prefix, res.Sync).Methods("PUT")
	r.HandleFunc(prefix+"/{id}", res.Get).Methods("GET")
	r.HandleFunc(prefix+"/{id}", res.Patch).Methods("PATCH")
	r.HandleFunc(prefix+"/{id}", res.Delete).Methods("DELETE")
}
