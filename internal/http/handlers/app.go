package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	Logger      zerolog.Logger
	JWTSecret   string
	TokenTTL    time.Duration
	Users       domain.UserRepository
	Fundraisers domain.FundraiserRepository
	Pledges     domain.PledgeRepository
	Comments    domain.CommentRepository
	Contacts    domain.ContactRepository

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// detail writes the error body shape shared by every endpoint.
func (a *App) detail(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"detail": msg})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// domainError maps a domain error to its HTTP status and user-facing message.
func (a *App) domainError(w http.ResponseWriter, err error) {
	var closed *domain.ClosedError
	switch {
	case errors.As(err, &closed):
		switch closed.Reason {
		case domain.ClosedReasonDeadline:
			a.detail(w, http.StatusBadRequest, "This fundraiser is closed to new pledges: the deadline has passed.")
		case domain.ClosedReasonGoalReached:
			a.detail(w, http.StatusBadRequest, "This fundraiser is closed to new pledges: the goal has been reached.")
		default:
			a.detail(w, http.StatusBadRequest, "This fundraiser is closed to new pledges.")
		}
	case errors.Is(err, domain.ErrSelfPledge):
		a.detail(w, http.StatusBadRequest, "You cannot pledge to your own fundraiser.")
	case errors.Is(err, domain.ErrGoalExceeded):
		a.detail(w, http.StatusBadRequest, "This pledge would take the fundraiser past its goal.")
	case errors.Is(err, domain.ErrInvalidInput):
		a.detail(w, http.StatusBadRequest, "Invalid input.")
	case errors.Is(err, domain.ErrUnauthorized):
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrForbidden):
		a.detail(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, domain.ErrNotFound):
		a.detail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		a.detail(w, http.StatusMethodNotAllowed, "Method not allowed.")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.detail(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
