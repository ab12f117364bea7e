package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

type pledgeDTO struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Comment     string    `json:"comment"`
	Anonymous   bool      `json:"anonymous"`
	Fundraiser  string    `json:"fundraiser"`
	Supporter   string    `json:"supporter"`
	DateCreated time.Time `json:"date_created"`
}

func toPledgeDTO(p *domain.Pledge) pledgeDTO {
	return pledgeDTO{
		ID:          p.ID,
		Amount:      p.Amount,
		Comment:     p.Comment,
		Anonymous:   p.Anonymous,
		Fundraiser:  p.FundraiserID,
		Supporter:   p.SupporterID,
		DateCreated: p.CreatedAt,
	}
}

type pledgeCreateRequest struct {
	Fundraiser string `json:"fundraiser"`
	Amount     int64  `json:"amount"`
	Comment    string `json:"comment"`
	Anonymous  bool   `json:"anonymous"`
}

type pledgeCreateResponse struct {
	Pledge     pledgeDTO     `json:"pledge"`
	Fundraiser fundraiserDTO `json:"fundraiser"`
}

func (a *App) PledgesList(w http.ResponseWriter, r *http.Request) {
	var filter domain.PledgeFilter
	q := r.URL.Query()

	if raw := q.Get("fundraiser"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid fundraiser value.")
			return
		}
		filter.FundraiserID = raw
	}
	if raw := q.Get("supporter"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid supporter value.")
			return
		}
		filter.SupporterID = raw
	}
	if raw := q.Get("anonymous"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid anonymous value.")
			return
		}
		filter.Anonymous = &v
	}
	if raw := q.Get("amount_lte"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid amount_lte value.")
			return
		}
		filter.AmountLTE = &v
	}
	filter.Search = q.Get("search")

	pledges, err := a.Pledges.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]pledgeDTO, 0, len(pledges))
	for i := range pledges {
		items = append(items, toPledgeDTO(&pledges[i]))
	}
	a.json(w, http.StatusOK, items)
}

// PledgesCreate admits a new pledge. Validation order is fixed: payload shape
// and amount first, then authentication, then the business checks inside the
// admission transaction. A deadline or goal rejection still closes a stale
// fundraiser, so the failed attempt self-heals the cached flag.
func (a *App) PledgesCreate(w http.ResponseWriter, r *http.Request) {
	var req pledgeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	if req.Fundraiser == "" {
		a.detail(w, http.StatusBadRequest, "Fundraiser is required.")
		return
	}
	if req.Amount <= 0 {
		a.detail(w, http.StatusBadRequest, "Amount must be a positive integer.")
		return
	}
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	pledge, fundraiser, err := a.Pledges.Admit(r.Context(), req.Fundraiser, userID, req.Amount, req.Comment, req.Anonymous, a.now())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, pledgeCreateResponse{
		Pledge:     toPledgeDTO(pledge),
		Fundraiser: toFundraiserDTO(fundraiser),
	})
}

func (a *App) PledgesGet(w http.ResponseWriter, r *http.Request) {
	p, err := a.Pledges.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toPledgeDTO(p))
}

// PledgesUpdate always rejects: pledges are immutable once admitted,
// regardless of actor.
func (a *App) PledgesUpdate(w http.ResponseWriter, r *http.Request) {
	a.detail(w, http.StatusMethodNotAllowed, "Pledges cannot be updated once made.")
}

// PledgesDelete always rejects: pledges are removed only when their
// fundraiser is deleted.
func (a *App) PledgesDelete(w http.ResponseWriter, r *http.Request) {
	a.detail(w, http.StatusMethodNotAllowed, "Pledges cannot be deleted once made.")
}
