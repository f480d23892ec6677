package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"vision-vogue/internal/domain"
	"vision-vogue/internal/middleware"
	"vision-vogue/internal/repository"
	"vision-vogue/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newLikesRouter(t *testing.T) (http.Handler, map[string]*domain.Product) {
	t.Helper()

	fixtures := repository.FixtureProducts()
	byName := make(map[string]*domain.Product, len(fixtures))
	for _, p := range fixtures {
		byName[p.Name] = p
	}

	products := repository.NewMemoryProductRepository(fixtures)
	likes := service.NewLikesService(repository.NewMemoryLikesStore(), products, zap.NewNop())

	router := chi.NewRouter()
	NewLikesHandler(likes, zap.NewNop()).
		RegisterRoutes(router, middleware.OptionalAuthMiddleware(testJWTSecret, zap.NewNop()))
	return router, byName
}

func decodeLikes(t *testing.T, body *json.Decoder) []domain.Product {
	t.Helper()

	var liked []domain.Product
	if err := body.Decode(&liked); err != nil {
		t.Fatalf("failed to decode likes response: %v", err)
	}
	return liked
}

func TestLikesAddListRemoveOverHTTP(t *testing.T) {
	router, byName := newLikesRouter(t)
	session := uuid.New().String()
	wayfarer := byName["Classic Wayfarer"]
	catEye := byName["Cat Eye Crystal"]

	for _, p := range []*domain.Product{wayfarer, catEye} {
		rec := performJSON(t, router, http.MethodPut, "/api/likes/"+p.ID.String(), session, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 liking %s, got %d: %s", p.Name, rec.Code, rec.Body.String())
		}
	}

	rec := performJSON(t, router, http.MethodGet, "/api/likes", session, nil)
	liked := decodeLikes(t, json.NewDecoder(rec.Body))
	if len(liked) != 2 {
		t.Fatalf("expected 2 liked products, got %d", len(liked))
	}
	if liked[0].ID != wayfarer.ID || liked[1].ID != catEye.ID {
		t.Errorf("expected likes in insertion order, got %s then %s", liked[0].Name, liked[1].Name)
	}

	rec = performJSON(t, router, http.MethodDelete, "/api/likes/"+wayfarer.ID.String(), session, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 unliking, got %d", rec.Code)
	}
	liked = decodeLikes(t, json.NewDecoder(rec.Body))
	if len(liked) != 1 || liked[0].ID != catEye.ID {
		t.Errorf("expected only %s to remain liked, got %d entries", catEye.Name, len(liked))
	}
}

func TestLikesAddIsIdempotentOverHTTP(t *testing.T) {
	router, byName := newLikesRouter(t)
	session := uuid.New().String()
	product := byName["Sport Shield"]

	performJSON(t, router, http.MethodPut, "/api/likes/"+product.ID.String(), session, nil)
	rec := performJSON(t, router, http.MethodPut, "/api/likes/"+product.ID.String(), session, nil)

	liked := decodeLikes(t, json.NewDecoder(rec.Body))
	if len(liked) != 1 {
		t.Errorf("expected liking twice to keep one entry, got %d", len(liked))
	}
}

func TestLikesStatusEndpoint(t *testing.T) {
	router, byName := newLikesRouter(t)
	session := uuid.New().String()
	product := byName["Designer Aviator"]

	rec := performJSON(t, router, http.MethodGet, "/api/likes/"+product.ID.String(), session, nil)
	var status map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	if status["liked"] {
		t.Error("expected unliked product to report liked=false")
	}

	performJSON(t, router, http.MethodPut, "/api/likes/"+product.ID.String(), session, nil)

	rec = performJSON(t, router, http.MethodGet, "/api/likes/"+product.ID.String(), session, nil)
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	if !status["liked"] {
		t.Error("expected liked product to report liked=true")
	}
}

func TestLikesUnknownProductReturns404(t *testing.T) {
	router, _ := newLikesRouter(t)

	rec := performJSON(t, router, http.MethodPut, "/api/likes/"+uuid.New().String(), uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 liking an unknown product, got %d", rec.Code)
	}
}

func TestLikesAreScopedToSession(t *testing.T) {
	router, byName := newLikesRouter(t)
	product := byName["Kids Flex"]

	performJSON(t, router, http.MethodPut, "/api/likes/"+product.ID.String(), "session-a", nil)

	rec := performJSON(t, router, http.MethodGet, "/api/likes", "session-b", nil)
	if liked := decodeLikes(t, json.NewDecoder(rec.Body)); len(liked) != 0 {
		t.Errorf("expected session-b to have no likes, got %d", len(liked))
	}
}
