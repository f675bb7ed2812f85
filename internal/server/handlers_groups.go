package server

import "net/http"

type createGroupRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupJSON(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]groupJSON, len(groups))
	for i, g := range groups {
		out[i] = toGroupJSON(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupJSON(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), r.PathValue("groupID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}

type addMemberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.groups.AddMemberByEmail(r.Context(), r.PathValue("groupID"), req.Email, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}
