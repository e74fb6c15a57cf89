package api

import (
	"encoding/json"
	"net/http"
	"time"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary     Register a new account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     201      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "invalid body or email taken"
// @Router      /api/v1/auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(u.ID, u.OrganizationID, u.Role, 24*time.Hour)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  u,
		"token": token,
	})
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     200      {object}  map[string]any
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Router      /api/v1/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(u.ID, u.OrganizationID, u.Role, 24*time.Hour)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  u,
		"token": token,
	})
}
