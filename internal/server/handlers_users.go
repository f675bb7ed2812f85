package server

import (
	"net/http"

	"github.com/divide-it/backend/internal/service"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type sessionResponse struct {
	User  *userJSON `json:"user"`
	Token string    `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserJSON(user), Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserJSON(user), Token: token})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetProfile(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), r.PathValue("userID"), service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}

type monthlyUsageJSON struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

func (s *Server) handleMonthlyUsage(w http.ResponseWriter, r *http.Request) {
	totals, err := s.expenses.MonthlyUsage(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]monthlyUsageJSON, len(totals))
	for i, t := range totals {
		out[i] = monthlyUsageJSON{
			Month:  t.Month.Format("Jan 2006"),
			Amount: t.Total.String(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
