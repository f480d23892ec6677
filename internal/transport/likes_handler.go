package transport

import (
	"errors"
	"net/http"

	"vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LikesHandler handles HTTP requests for the session wishlist.
type LikesHandler struct {
	likes  service.LikesService
	logger *zap.Logger
}

// NewLikesHandler creates a new LikesHandler
func NewLikesHandler(likes service.LikesService, logger *zap.Logger) *LikesHandler {
	return &LikesHandler{likes: likes, logger: logger}
}

// RegisterRoutes registers wishlist routes under the session
// middleware, with optional auth so signed-in customers keep one
// wishlist across devices.
func (h *LikesHandler) RegisterRoutes(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/likes", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Use(middleware.SessionMiddleware)
		r.Get("/", h.List)
		r.Get("/{id}", h.IsLiked)
		r.Put("/{id}", h.Add)
		r.Delete("/{id}", h.Remove)
	})
}

// List returns the session's liked products.
func (h *LikesHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	liked, err := h.likes.List(r.Context(), session)
	if err != nil {
		h.logger.Error("Failed to list likes", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch likes")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, liked)
}

// IsLiked reports whether the session has liked the product.
func (h *LikesHandler) IsLiked(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	liked, err := h.likes.IsLiked(r.Context(), session, productID)
	if err != nil {
		h.logger.Error("Failed to check like", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check like")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// Add likes a product. Liking twice is a no-op.
func (h *LikesHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	liked, err := h.likes.Add(r.Context(), session, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to add like", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add like")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, liked)
}

// Remove unlikes a product. Removing an absent like is a no-op.
func (h *LikesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	liked, err := h.likes.Remove(r.Context(), session, productID)
	if err != nil {
		h.logger.Error("Failed to remove like", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove like")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, liked)
}
