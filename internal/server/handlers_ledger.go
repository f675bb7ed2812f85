package server

import (
	"net/http"

	"github.com/divide-it/backend/internal/apperrors"
	"github.com/divide-it/backend/internal/middleware"
	"github.com/divide-it/backend/internal/money"
)

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.balances.Balance(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceJSON{
		YouOwe:    balance.YouOwe,
		OwedToYou: balance.OwedToYou,
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	entries, err := s.balances.Breakdown(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownJSON(entries))
}

type settleAllRequest struct {
	DebtorID   string `json:"debtor_user_id"`
	CreditorID string `json:"creditor_user_id"`
}

type settleAllResponse struct {
	Count         int          `json:"count"`
	AmountSettled money.Amount `json:"amount_settled"`
}

func (s *Server) handleSettleAll(w http.ResponseWriter, r *http.Request) {
	var req settleAllRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.DebtorID == "" || req.CreditorID == "" {
		writeError(w, apperrors.Invalid("debtor_user_id and creditor_user_id are required"))
		return
	}

	result, err := s.settlements.SettleAllBetween(r.Context(), req.DebtorID, req.CreditorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settleAllResponse{
		Count:         result.Count,
		AmountSettled: result.TotalAmount,
	})
}

func (s *Server) handleSettleSplit(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	if actingUserID == "" {
		writeError(w, apperrors.PermissionDenied("missing session identity"))
		return
	}

	split, err := s.settlements.SettleSplit(r.Context(), r.PathValue("splitID"), actingUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSplitJSON(*split))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ordering, descending := orderingFromQuery(q.Get("ordering"), q.Get("dir"))

	events, err := s.history.History(r.Context(), r.PathValue("userID"), ordering, descending)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]eventJSON, len(events))
	for i, ev := range events {
		out[i] = toEventJSON(ev)
	}
	writeJSON(w, http.StatusOK, out)
}
