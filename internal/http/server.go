package http

import (
	"context"
	"net/http"
	"sync"

	applog "expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
)

type Server struct {
	http.Server

	auth         *services.AuthService
	expenses     *services.ExpenseService
	reports      *services.ReportService
	store        *storage.Repository
	secureCookie bool
	logger       *applog.Logger

	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures middleware and routes, returning a ready-to-run server.
func NewServer(addr string, auth *services.AuthService, expenses *services.ExpenseService, reports *services.ReportService, store *storage.Repository, secureCookie bool) *Server {
	mux := http.NewServeMux()

	s := &Server{
		auth:         auth,
		expenses:     expenses,
		reports:      reports,
		store:        store,
		secureCookie: secureCookie,
		logger:       applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP),
		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.HandleFunc("GET /api/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("PUT /api/profile", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/password", s.requireAuth(s.handleChangePassword))

	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/search", s.requireAuth(s.handleSearchExpenses))
	mux.HandleFunc("GET /api/expenses/{id}", s.requireAuth(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.requireAuth(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.requireAuth(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/categories", s.requireAuth(s.handleListCategories))

	mux.HandleFunc("GET /api/budgets", s.requireAuth(s.handleBudgetStatus))
	mux.HandleFunc("PUT /api/budgets", s.requireAuth(s.handleSetBudget))

	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("GET /api/reports", s.requireAuth(s.handleReport))

	traceMW := trace.NewMiddleware(ratelimit.ExtractClientIP)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr: addr,
		Handler: traceMW.Middleware(
			headersMW.Middleware(
				s.rateLimiter.MutatingMiddleware(mux))),
	}

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine and drains the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
