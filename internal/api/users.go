package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tradinghub/internal/domain"
)

// createUserRequest is the POST /api/users payload.
type createUserRequest struct {
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	Password           string   `json:"password"`
	APIKey             string   `json:"api_key"`
	APISecret          string   `json:"api_secret"`
	AssignedStrategies []string `json:"assigned_strategies"`
}

// handleCreateUser registers a dashboard account.
// POST /api/users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	u := &domain.User{
		Email:              req.Email,
		Name:               req.Name,
		Password:           req.Password,
		APIKey:             req.APIKey,
		APISecret:          req.APISecret,
		AssignedStrategies: req.AssignedStrategies,
	}
	if err := s.users.Insert(r.Context(), u); err != nil {
		respondStorageError(w, err)
		return
	}

	s.log.Info().Str("email", u.Email).Msg("user created")
	respondJSON(w, http.StatusCreated, u)
}

// handleListUsers lists all accounts, newest first.
// GET /api/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list users")
		respondStorageError(w, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// handleGetUser retrieves one account by email.
// GET /api/users/{email}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	u, err := s.users.GetByEmail(r.Context(), email)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// handleDeleteUser removes an account.
// DELETE /api/users/{email}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	if err := s.users.Delete(r.Context(), email); err != nil {
		respondStorageError(w, err)
		return
	}

	s.log.Info().Str("email", email).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}
