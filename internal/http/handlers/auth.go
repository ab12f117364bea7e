package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
	"server/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.detail(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	user, err := a.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.detail(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		a.domainError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.detail(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, err := middleware.IssueToken(a.JWTSecret, user.ID, user.Username, a.TokenTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.detail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	a.json(w, http.StatusOK, loginResponse{Token: token, User: toUserDTO(user)})
}
