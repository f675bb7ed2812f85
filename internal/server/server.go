// Package server exposes the ledger over an HTTP+JSON boundary.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/auth"
	"github.com/divide-it/backend/internal/middleware"
	"github.com/divide-it/backend/internal/service"
)

// Server routes API requests to the services.
type Server struct {
	users       *service.UserService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	balances    *service.BalanceService
	settlements *service.SettlementService
	history     *service.HistoryService
	jwtManager  *auth.JWTManager
}

// New creates a Server over the given services.
func New(
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	balances *service.BalanceService,
	settlements *service.SettlementService,
	history *service.HistoryService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		users:       users,
		groups:      groups,
		expenses:    expenses,
		balances:    balances,
		settlements: settlements,
		history:     history,
		jwtManager:  jwtManager,
	}
}

// Routes builds the API mux. Settling a single split requires a valid
// session token because the acting user's identity decides permission;
// everything else addresses users by explicit id.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/profile/{userID}", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile/{userID}", s.handleUpdateProfile)
	mux.HandleFunc("GET /api/usage/{userID}", s.handleMonthlyUsage)

	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("GET /api/groups/{groupID}", s.handleGetGroup)
	mux.HandleFunc("DELETE /api/groups/{groupID}", s.handleDeleteGroup)
	mux.HandleFunc("POST /api/groups/{groupID}/members", s.handleAddMember)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/{expenseID}", s.handleGetExpense)
	mux.HandleFunc("DELETE /api/expenses/{expenseID}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/balance/{userID}", s.handleBalance)
	mux.HandleFunc("GET /api/balance/{userID}/breakdown", s.handleBreakdown)
	mux.HandleFunc("POST /api/settle", s.handleSettleAll)
	mux.Handle("POST /api/splits/{splitID}/settle",
		middleware.RequireAuth(s.jwtManager, http.HandlerFunc(s.handleSettleSplit)))
	mux.HandleFunc("GET /api/history/{userID}", s.handleHistory)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": apperrors.Message(err)})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Invalid("invalid request body: %v", err)
	}
	return nil
}
