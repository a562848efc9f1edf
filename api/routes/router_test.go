package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	cartsvc "github.com/gelaboca/gelaboca-backend/internal/cart"
	catalogsvc "github.com/gelaboca/gelaboca-backend/internal/catalog"
	chatsvc "github.com/gelaboca/gelaboca-backend/internal/chat"
	ordersvc "github.com/gelaboca/gelaboca-backend/internal/orders"
	"github.com/gelaboca/gelaboca-backend/pkg/config"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

type staticCatalog struct{}

func (staticCatalog) ListProducts(context.Context) []catalogsvc.Product {
	return catalogsvc.SampleProducts()
}

func (staticCatalog) ListPromotional(context.Context) []catalogsvc.Product {
	return nil
}

func (staticCatalog) SearchSimilar(context.Context, []float32, int) ([]catalogsvc.Product, error) {
	return nil, nil
}

func testRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	cartService := cartsvc.NewService(cartsvc.NewMemoryStore(), nil, logg)
	chatService := chatsvc.NewService(nil, nil, nil, chatsvc.NewMemoryHistory(), nil, logg, 20)
	ordersService := ordersvc.NewService(nil, logg)

	return NewRouter(cfg, logg, nil, nil, nil, chatService, staticCatalog{}, cartService, ordersService, nil)
}

func TestRouterServesProducts(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var products []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("expected products")
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterReadinessSkipsUnconfiguredDependencies(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.Status != "ready" {
		t.Fatalf("expected ready, got %q", envelope.Data.Status)
	}
	for _, name := range []string{"db", "redis", "index"} {
		if got := envelope.Data.Checks[name]; got != "skipped" {
			t.Fatalf("expected %s check skipped, got %q", name, got)
		}
	}
}

func TestRouterMintsSessionOnCartRoutes(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected session id header on cart routes")
	}
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
