package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

type commentDTO struct {
	ID          string       `json:"id"`
	Fundraiser  string       `json:"fundraiser"`
	Author      string       `json:"author"`
	Parent      *string      `json:"parent"`
	Content     string       `json:"content"`
	Anonymous   bool         `json:"anonymous"`
	DateCreated time.Time    `json:"date_created"`
	Replies     []commentDTO `json:"replies"`
}

// renderComment serializes a comment with its reply subtree, using a
// children index over every comment on the same fundraiser.
func renderComment(c *domain.Comment, children map[string][]*domain.Comment) commentDTO {
	dto := commentDTO{
		ID:          c.ID,
		Fundraiser:  c.FundraiserID,
		Author:      c.AuthorID,
		Parent:      c.ParentID,
		Content:     c.Content,
		Anonymous:   c.Anonymous,
		DateCreated: c.CreatedAt,
		Replies:     []commentDTO{},
	}
	for _, reply := range children[c.ID] {
		dto.Replies = append(dto.Replies, renderComment(reply, children))
	}
	return dto
}

// childrenIndex loads every comment for the fundraisers present in the given
// set and indexes them by parent, so reply trees can be rendered even when
// the listing filter excluded the replies themselves.
func (a *App) childrenIndex(r *http.Request, comments []domain.Comment) (map[string][]*domain.Comment, error) {
	seen := make(map[string]bool)
	children := make(map[string][]*domain.Comment)
	for i := range comments {
		fid := comments[i].FundraiserID
		if seen[fid] {
			continue
		}
		seen[fid] = true
		all, err := a.Comments.List(r.Context(), domain.CommentFilter{FundraiserID: fid})
		if err != nil {
			return nil, err
		}
		for j := range all {
			c := all[j]
			if c.ParentID == nil {
				continue
			}
			children[*c.ParentID] = append(children[*c.ParentID], &all[j])
		}
	}
	return children, nil
}

func (a *App) CommentsList(w http.ResponseWriter, r *http.Request) {
	var filter domain.CommentFilter
	q := r.URL.Query()

	if raw := q.Get("fundraiser"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid fundraiser value.")
			return
		}
		filter.FundraiserID = raw
	}
	if raw := q.Get("author"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid author value.")
			return
		}
		filter.AuthorID = raw
	}
	if raw := q.Get("anonymous"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			a.detail(w, http.StatusBadRequest, "Invalid anonymous value.")
			return
		}
		filter.Anonymous = &v
	}
	filter.Search = q.Get("search")

	comments, err := a.Comments.List(r.Context(), filter)
	if err != nil {
		a.domainError(w, err)
		return
	}
	children, err := a.childrenIndex(r, comments)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]commentDTO, 0, len(comments))
	for i := range comments {
		items = append(items, renderComment(&comments[i], children))
	}
	a.json(w, http.StatusOK, items)
}

type commentCreateRequest struct {
	Fundraiser string  `json:"fundraiser"`
	Parent     *string `json:"parent"`
	Content    string  `json:"content"`
}

// CommentsCreate posts a comment. The anonymous flag is never taken from the
// caller: it is derived once from whether the author holds an anonymous
// pledge on the fundraiser, and frozen from then on.
func (a *App) CommentsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req commentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	if req.Fundraiser == "" {
		a.detail(w, http.StatusBadRequest, "Fundraiser is required.")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		a.detail(w, http.StatusBadRequest, "Content is required.")
		return
	}

	if _, err := a.Fundraisers.GetByID(r.Context(), req.Fundraiser); err != nil {
		a.domainError(w, err)
		return
	}

	if req.Parent != nil && *req.Parent != "" {
		parent, err := a.Comments.GetByID(r.Context(), *req.Parent)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.detail(w, http.StatusBadRequest, "Parent comment does not exist.")
				return
			}
			a.domainError(w, err)
			return
		}
		if err := domain.ValidateReply(parent, req.Fundraiser); err != nil {
			a.detail(w, http.StatusBadRequest, "Parent comment belongs to a different fundraiser.")
			return
		}
	} else {
		req.Parent = nil
	}

	anonymous, err := a.Pledges.HasAnonymousPledge(r.Context(), req.Fundraiser, userID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	c := &domain.Comment{
		ID:           uuid.NewString(),
		FundraiserID: req.Fundraiser,
		AuthorID:     userID,
		ParentID:     req.Parent,
		Content:      req.Content,
		Anonymous:    anonymous,
		CreatedAt:    a.now(),
	}
	if err := a.Comments.Create(r.Context(), c); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, renderComment(c, nil))
}

func (a *App) CommentsGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.Comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	children, err := a.childrenIndex(r, []domain.Comment{*c})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, renderComment(c, children))
}

type commentUpdateRequest struct {
	Content *string `json:"content"`
	Parent  *string `json:"parent"`
}

// CommentsUpdate edits a comment. Author, fundraiser and the anonymous flag
// are frozen; only the author may edit.
func (a *App) CommentsUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	c, err := a.Comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if c.AuthorID != userID {
		a.detail(w, http.StatusForbidden, "Only the author may edit this comment.")
		return
	}

	var req commentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.detail(w, http.StatusBadRequest, "Invalid payload.")
		return
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			a.detail(w, http.StatusBadRequest, "Content is required.")
			return
		}
		c.Content = *req.Content
	}
	if req.Parent != nil {
		if *req.Parent == "" {
			c.ParentID = nil
		} else {
			parent, err := a.Comments.GetByID(r.Context(), *req.Parent)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					a.detail(w, http.StatusBadRequest, "Parent comment does not exist.")
					return
				}
				a.domainError(w, err)
				return
			}
			if err := domain.ValidateReply(parent, c.FundraiserID); err != nil {
				a.detail(w, http.StatusBadRequest, "Parent comment belongs to a different fundraiser.")
				return
			}
			// Re-parenting under the comment itself or one of its own replies
			// would create a cycle in the thread.
			for anc := parent; ; {
				if anc.ID == c.ID {
					a.detail(w, http.StatusBadRequest, "A comment cannot be a reply to itself or one of its own replies.")
					return
				}
				if anc.ParentID == nil {
					break
				}
				anc, err = a.Comments.GetByID(r.Context(), *anc.ParentID)
				if err != nil {
					a.domainError(w, err)
					return
				}
			}
			c.ParentID = req.Parent
		}
	}

	if err := a.Comments.Update(r.Context(), c); err != nil {
		a.domainError(w, err)
		return
	}
	children, err := a.childrenIndex(r, []domain.Comment{*c})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, renderComment(c, children))
}

func (a *App) CommentsDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.detail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	c, err := a.Comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if c.AuthorID != userID {
		a.detail(w, http.StatusForbidden, "Only the author may delete this comment.")
		return
	}
	if err := a.Comments.Delete(r.Context(), c.ID); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
