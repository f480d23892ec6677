package service

import (
	"context"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LikesService manages the per-session wishlist: a set of products
// keyed by product ID. Add and remove are idempotent.
type LikesService interface {
	List(ctx context.Context, session string) ([]domain.Product, error)
	Add(ctx context.Context, session string, productID uuid.UUID) ([]domain.Product, error)
	Remove(ctx context.Context, session string, productID uuid.UUID) ([]domain.Product, error)
	IsLiked(ctx context.Context, session string, productID uuid.UUID) (bool, error)
}

type likesService struct {
	store    repository.LikesStore
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewLikesService creates a LikesService.
func NewLikesService(store repository.LikesStore, products repository.ProductRepository, logger *zap.Logger) LikesService {
	return &likesService{store: store, products: products, logger: logger}
}

// List returns the session's liked products.
func (s *likesService) List(ctx context.Context, session string) ([]domain.Product, error) {
	liked, err := s.store.Load(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load likes", zap.String("session", session), zap.Error(err))
		return []domain.Product{}, nil
	}
	return liked, nil
}

// Add inserts the product into the liked set. Liking a product twice
// leaves a single entry.
func (s *likesService) Add(ctx context.Context, session string, productID uuid.UUID) ([]domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	liked, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}

	for _, existing := range liked {
		if existing.ID == productID {
			return liked, nil
		}
	}

	liked = append(liked, *product)
	s.persist(ctx, session, liked)
	return liked, nil
}

// Remove deletes the product from the liked set. Removing an absent
// product is a no-op.
func (s *likesService) Remove(ctx context.Context, session string, productID uuid.UUID) ([]domain.Product, error) {
	liked, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}

	for idx, existing := range liked {
		if existing.ID == productID {
			liked = append(liked[:idx], liked[idx+1:]...)
			s.persist(ctx, session, liked)
			break
		}
	}
	return liked, nil
}

// IsLiked reports membership without side effects.
func (s *likesService) IsLiked(ctx context.Context, session string, productID uuid.UUID) (bool, error) {
	liked, err := s.List(ctx, session)
	if err != nil {
		return false, err
	}
	for _, existing := range liked {
		if existing.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *likesService) persist(ctx context.Context, session string, liked []domain.Product) {
	if err := s.store.Save(ctx, session, liked); err != nil {
		s.logger.Error("Failed to save likes", zap.String("session", session), zap.Error(err))
	}
}
