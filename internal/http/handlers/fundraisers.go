package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

type fundraiserDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        int64      `json:"goal"`
	Image       string     `json:"image"`
	IsOpen      bool       `json:"is_open"`
	Deadline    *time.Time `json:"deadline"`
	Owner       string     `json:"owner"`
	DateCreated time.Time  `json:"date_created"`
}

type fundraiserDetailDTO struct {
	fundraiserDTO
	TotalPledged int64       `json:"total_pledged"`
	DaysLeft     *int        `json:"days_left"`
	Pledges      []pledgeDTO `json:"pledges"`
}

func toFundraiserDTO(f *domain.Fundraiser) fundraiserDTO {
	return fundraiserDTO{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Goal:        f.Goal,
		Image:       f.Image,
		IsOpen:      f.IsOpen,
		Deadline:    f.Deadline,
		Owner:       f.OwnerID,
		DateCreated: f.CreatedAt,
	}
}

type fundraiserCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Goal        int64   `json:"goal"`
	Image       string  `json:"image"`
	IsOpen      *bool   `json:"is_open"`
	Deadline    *string `json:"deadline"`
}

func (a *App) FundraisersList(w http.ResponseWriter, r *http.Request) {
	var filter domain.FundraiserFilter
	q := r.URL.Query()

	if raw := q.Get("is_open"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid is_open value.")
			return
		}
		filter.IsOpen = &v
	}
	if raw := q.Get("goal_lte"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid goal_lte value.")
			return
		}
		filter.GoalLTE = &v
	}
	if raw := q.Get("goal_gte"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid goal_gte value.")
			return
		}
		filter.GoalGTE = &v
	}
	if raw := q.Get("owner"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid owner value.")
			return
		}
		filter.OwnerID = raw
	}
	if raw := q.Get("has_deadline"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid has_deadline value.")
			return
		}
		filter.HasDeadline = &v
	}
	filter.Search = q.Get("search")

	fundraisers, err := a.Fundraisers.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]fundraiserDTO, 0, len(fundraisers))
	for i := range fundraisers {
		items = append(items, toFundraiserDTO(&fundraisers[i]))
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) FundraisersCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req fundraiserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		a.detail(w, http.StatusBadRequest, "Title is required.")
		return
	}
	if req.Goal <= 0 {
		a.detail(w, http.StatusBadRequest, "Goal must be a positive integer.")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid deadline, use RFC3339.")
			return
		}
		deadline = &parsed
	}

	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	f := &domain.Fundraiser{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Image:       req.Image,
		IsOpen:      isOpen,
		Deadline:    deadline,
		OwnerID:     userID,
		CreatedAt:   a.now(),
	}
	if err := a.Fundraisers.Create(r.Context(), f); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toFundraiserDTO(f))
}

func (a *App) FundraisersGet(w http.ResponseWriter, r *http.Request) {
	f, err := a.Fundraisers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	total, err := a.Fundraisers.TotalPledged(r.Context(), f.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	pledges, err := a.Pledges.List(r.Context(), domain.PledgeFilter{FundraiserID: f.ID})
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]pledgeDTO, 0, len(pledges))
	for i := range pledges {
		items = append(items, toPledgeDTO(&pledges[i]))
	}
	a.json(w, http.StatusOK, fundraiserDetailDTO{
		fundraiserDTO: toFundraiserDTO(f),
		TotalPledged:  total,
		DaysLeft:      f.DaysLeft(a.now()),
		Pledges:       items,
	})
}

type fundraiserUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Goal        *int64  `json:"goal"`
	Image       *string `json:"image"`
	IsOpen      *bool   `json:"is_open"`
	Deadline    *string `json:"deadline"`
}

func (a *App) FundraisersUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	f, err := a.Fundraisers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if f.OwnerID != userID {
		a.detail(w, http.StatusForbidden, "Only the owner may edit this fundraiser.")
		return
	}

	var req fundraiserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			a.detail(w, http.StatusBadRequest, "Title is required.")
			return
		}
		f.Title = title
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Goal != nil {
		if *req.Goal <= 0 {
			a.detail(w, http.StatusBadRequest, "Goal must be a positive integer.")
			return
		}
		f.Goal = *req.Goal
	}
	if req.Image != nil {
		f.Image = *req.Image
	}
	if req.IsOpen != nil {
		// The owner may force the flag either way, including closing early.
		f.IsOpen = *req.IsOpen
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			f.Deadline = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *req.Deadline)
			if err != nil {
				a.detail(w, http.StatusBadRequest, "Invalid deadline, use RFC3339.")
				return
			}
			f.Deadline = &parsed
		}
	}

	if err := a.Fundraisers.Update(r.Context(), f); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toFundraiserDTO(f))
}

func (a *App) FundraisersDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	f, err := a.Fundraisers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if f.OwnerID != userID {
		a.detail(w, http.StatusForbidden, "Only the owner may delete this fundraiser.")
		return
	}
	if err := a.Fundraisers.Delete(r.Context(), f.ID); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
