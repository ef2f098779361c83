package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"landing-api/internal/api"
	"landing-api/internal/auth"
	"landing-api/internal/validate"
)

type BlogHandler struct {
	store Store
	log   *zap.Logger
}

func NewBlogHandler(store Store, log *zap.Logger) *BlogHandler {
	return &BlogHandler{store: store, log: log}
}

type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// List returns all posts, newest first. Public.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.log.Error("list posts failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeFetchError, "Failed to fetch blog posts")
		return
	}
	api.OK(w, posts)
}

// GetByID returns a single post. Public.
func (h *BlogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		h.log.Error("get post failed", zap.String("id", id), zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeFetchError, "Failed to fetch blog post")
		return
	}
	if post == nil {
		api.Error(w, http.StatusNotFound, api.CodeNotFound, "Blog post not found")
		return
	}
	api.OK(w, post)
}

// Create persists a new post authored by the session user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, api.CodeUnauthorized, "Authentication required")
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, validate.CodeValidationError, "Title, content, and excerpt are required")
		return
	}
	if fieldErr := validate.BlogPost(req.Title, req.Content, req.Excerpt); fieldErr != nil {
		api.Error(w, http.StatusBadRequest, fieldErr.Code, fieldErr.Message)
		return
	}

	post, err := h.store.CreatePost(
		r.Context(),
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Content),
		strings.TrimSpace(req.Excerpt),
		claims.UserID,
	)
	if err != nil {
		h.log.Error("create post failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeCreateError, "Failed to create blog post")
		return
	}
	api.Created(w, post)
}

// Update rewrites an existing post. The existence check runs before
// field validation, so an unknown id always reads as 404.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		h.log.Error("update lookup failed", zap.String("id", id), zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeUpdateError, "Failed to update blog post")
		return
	}
	if existing == nil {
		api.Error(w, http.StatusNotFound, api.CodeNotFound, "Blog post not found")
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, validate.CodeValidationError, "Title, content, and excerpt are required")
		return
	}
	if fieldErr := validate.BlogPost(req.Title, req.Content, req.Excerpt); fieldErr != nil {
		api.Error(w, http.StatusBadRequest, fieldErr.Code, fieldErr.Message)
		return
	}

	post, err := h.store.UpdatePost(
		r.Context(),
		id,
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Content),
		strings.TrimSpace(req.Excerpt),
	)
	if err != nil {
		h.log.Error("update post failed", zap.String("id", id), zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeUpdateError, "Failed to update blog post")
		return
	}
	if post == nil {
		// Deleted between the existence check and the update.
		api.Error(w, http.StatusNotFound, api.CodeNotFound, "Blog post not found")
		return
	}
	api.OK(w, post)
}

// Delete removes a post. Deleting an unknown id is 404 every time.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeletePost(r.Context(), id)
	if err != nil {
		h.log.Error("delete post failed", zap.String("id", id), zap.Error(err))
		api.Error(w, http.StatusInternalServerError, api.CodeDeleteError, "Failed to delete blog post")
		return
	}
	if !deleted {
		api.Error(w, http.StatusNotFound, api.CodeNotFound, "Blog post not found")
		return
	}
	api.OK(w, map[string]string{"message": "Blog post deleted successfully"})
}
