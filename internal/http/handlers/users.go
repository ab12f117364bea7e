package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, Email: u.Email, DateJoined: u.CreatedAt}
}

func (a *App) UsersCreate(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		a.detail(w, http.StatusBadRequest, "Username, email and password are required.")
		return
	}
	if !strings.Contains(req.Email, "@") {
		a.detail(w, http.StatusBadRequest, "Enter a valid email address.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.detail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    a.now(),
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			a.detail(w, http.StatusBadRequest, "A user with that username or email already exists.")
			return
		}
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toUserDTO(user))
}

func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.Users.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}
