package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogsvc "github.com/gelaboca/gelaboca-backend/internal/catalog"
)

type stubCatalog struct {
	products    []catalogsvc.Product
	promotional []catalogsvc.Product
}

func (s *stubCatalog) ListProducts(context.Context) []catalogsvc.Product {
	return s.products
}

func (s *stubCatalog) ListPromotional(context.Context) []catalogsvc.Product {
	return s.promotional
}

func (s *stubCatalog) SearchSimilar(context.Context, []float32, int) ([]catalogsvc.Product, error) {
	panic("unimplemented")
}

func TestListProductsServesRawArray(t *testing.T) {
	svc := &stubCatalog{products: []catalogsvc.Product{
		{ID: "choc-1", Name: "Sorvete de Chocolate", Code: "CHOC001", Price: 8.90, Active: true},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ListProducts(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var products []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("expected a raw JSON array, got %s", rec.Body.String())
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0]["nome"] != "Sorvete de Chocolate" {
		t.Fatalf("expected Portuguese field names, got %v", products[0])
	}
	if products[0]["valor"] != 8.90 {
		t.Fatalf("expected valor=8.90, got %v", products[0]["valor"])
	}
}

func TestListProductsDegradedModeStillOK(t *testing.T) {
	// The catalog service swallows index failures and serves the sample
	// catalog, so the controller always answers 200.
	svc := &stubCatalog{products: catalogsvc.SampleProducts()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ListProducts(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 in degraded mode, got %d", rec.Code)
	}
	var products []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(products) != len(catalogsvc.SampleProducts()) {
		t.Fatalf("expected full sample catalog, got %d products", len(products))
	}
}

func TestListPromotionalProducts(t *testing.T) {
	svc := &stubCatalog{promotional: []catalogsvc.Product{
		{ID: "sundae-2", Name: "Sundae de Morango", Price: 13.90, Active: true, Promotional: true},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/promotional-products", nil)
	rec := httptest.NewRecorder()
	ListPromotionalProducts(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var products []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(products) != 1 || products[0]["promocional"] != true {
		t.Fatalf("unexpected promotional payload %v", products)
	}
}
