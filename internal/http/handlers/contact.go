package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/middleware"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactCreate validates and stores a contact-form message, tagging it with
// the detected country and locale.
func (a *App) ContactCreate(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		a.detail(w, http.StatusBadRequest, "Name, email and message are required.")
		return
	}
	if !strings.Contains(req.Email, "@") {
		a.detail(w, http.StatusBadRequest, "Enter a valid email address.")
		return
	}

	m := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Country:   middleware.CountryFromContext(r.Context()),
		Locale:    middleware.LocaleFromContext(r.Context()),
		CreatedAt: a.now(),
	}
	if err := a.Contacts.Create(r.Context(), m); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": m.ID, "detail": "Thanks for getting in touch."})
}
