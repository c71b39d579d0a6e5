package http

import (
	"errors"
	"net/http"

	"github.com/nlpds/nlpds-server/internal/auth"
)

type registerReq struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=4"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResp struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

// POST /api/auth/register
func RegisterHandler(users *auth.UserStore, svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		u, err := users.Create(r.Context(), req.Username, req.Password, req.DisplayName)
		if errors.Is(err, auth.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}
		tok, err := svc.IssueToken(u.ID, u.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "issue token")
			return
		}
		writeJSON(w, http.StatusCreated, tokenResp{Token: tok, User: u})
	}
}

// POST /api/auth/login
func LoginHandler(users *auth.UserStore, svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		u, err := users.Authenticate(r.Context(), req.Username, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		tok, err := svc.IssueToken(u.ID, u.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "issue token")
			return
		}
		writeJSON(w, http.StatusOK, tokenResp{Token: tok, User: u})
	}
}

// GET /api/auth/me
func MeHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		u, err := users.Get(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
