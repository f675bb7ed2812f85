package server

import (
	"encoding/json"
	"net/http"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/service"
)

type createExpenseRequest struct {
	Description string `json:"description"`
	// Amount accepts a string ("100.00") or bare number; it is validated
	// as a positive 2-decimal fixed-point value.
	Amount       json.RawMessage `json:"amount"`
	PayerID      string          `json:"payer"`
	GroupID      string          `json:"group"`
	Participants []string        `json:"participants"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Amount) == 0 {
		writeError(w, apperrors.Invalid("amount is required"))
		return
	}

	amount := string(req.Amount)
	var asString string
	if err := json.Unmarshal(req.Amount, &asString); err == nil {
		amount = asString
	}

	expense, err := s.expenses.CreateExpense(r.Context(), service.CreateExpenseInput{
		Description:    req.Description,
		Amount:         amount,
		PayerID:        req.PayerID,
		GroupID:        req.GroupID,
		ParticipantIDs: req.Participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		writeError(w, apperrors.Invalid("group_id query parameter is required"))
		return
	}

	expenses, err := s.expenses.ListExpensesByGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.GetExpense(r.Context(), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), r.PathValue("expenseID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}
