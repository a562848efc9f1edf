package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gelaboca/gelaboca-backend/api/middleware"
	cartsvc "github.com/gelaboca/gelaboca-backend/internal/cart"
)

func newCartService() *cartsvc.Service {
	return cartsvc.NewService(cartsvc.NewMemoryStore(), nil, testLogger())
}

func sessionRequest(method, target, body, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v (%s)", err, rec.Body.String())
	}
	return envelope.Data
}

func TestCartAddItemAndFetch(t *testing.T) {
	svc := newCartService()

	req := sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"sorvete-chocolate","nome":"Sorvete de Chocolate","valor":8.90,"quantidade":2}`, "mesa-1")
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeCartView(t, rec)
	if view["totalItems"] != float64(2) {
		t.Fatalf("expected totalItems=2, got %v", view["totalItems"])
	}

	fetchReq := sessionRequest(http.MethodGet, "/api/v1/cart", "", "mesa-1")
	fetchRec := httptest.NewRecorder()
	CartFetch(svc, testLogger()).ServeHTTP(fetchRec, fetchReq)

	view = decodeCartView(t, fetchRec)
	items, ok := view["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 persisted line, got %v", view["items"])
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc := newCartService()

	req := sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"nome":"Sem ID","valor":5}`, "mesa-1")
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartFinalizeThenRemoveIsNoOp(t *testing.T) {
	svc := newCartService()

	addReq := sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"sorvete-chocolate","nome":"Sorvete de Chocolate","valor":8.90}`, "mesa-1")
	httptestExec(CartAddItem(svc, testLogger()), addReq)

	finalizeReq := sessionRequest(http.MethodPost, "/api/v1/cart/finalize", "", "mesa-1")
	finalizeRec := httptest.NewRecorder()
	CartFinalize(svc, testLogger()).ServeHTTP(finalizeRec, finalizeReq)

	view := decodeCartView(t, finalizeRec)
	if view["orderCompleted"] != true {
		t.Fatalf("expected completed order, got %v", view)
	}

	removeReq := sessionRequest(http.MethodDelete, "/api/v1/cart/items/sorvete-chocolate", "", "mesa-1")
	removeReq = withURLParam(removeReq, "productId", "sorvete-chocolate")
	removeRec := httptest.NewRecorder()
	CartRemoveItem(svc, testLogger()).ServeHTTP(removeRec, removeReq)

	view = decodeCartView(t, removeRec)
	items, _ := view["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("finalized line should survive removal, got %v", view["items"])
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newCartService()

	addReq := sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"sorvete-morango","nome":"Sorvete de Morango","valor":8.90}`, "mesa-1")
	httptestExec(CartAddItem(svc, testLogger()), addReq)

	updateReq := sessionRequest(http.MethodPatch, "/api/v1/cart/items/sorvete-morango", `{"quantidade":0}`, "mesa-1")
	updateReq = withURLParam(updateReq, "productId", "sorvete-morango")
	updateRec := httptest.NewRecorder()
	CartUpdateQuantity(svc, testLogger()).ServeHTTP(updateRec, updateReq)

	if updateRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", updateRec.Code, updateRec.Body.String())
	}
	view := decodeCartView(t, updateRec)
	items, _ := view["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", view["items"])
	}
}

func TestCartRequestCancellationAndNewOrder(t *testing.T) {
	svc := newCartService()

	addReq := sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"sorvete-chocolate","nome":"Sorvete de Chocolate","valor":8.90}`, "mesa-1")
	httptestExec(CartAddItem(svc, testLogger()), addReq)
	finalizeReq := sessionRequest(http.MethodPost, "/api/v1/cart/finalize", "", "mesa-1")
	httptestExec(CartFinalize(svc, testLogger()), finalizeReq)

	cancelReq := sessionRequest(http.MethodPost, "/api/v1/cart/items/sorvete-chocolate/cancel", "", "mesa-1")
	cancelReq = withURLParam(cancelReq, "productId", "sorvete-chocolate")
	cancelRec := httptest.NewRecorder()
	CartRequestCancellation(svc, testLogger()).ServeHTTP(cancelRec, cancelReq)

	view := decodeCartView(t, cancelRec)
	cancelled, _ := view["cancelledIds"].([]any)
	if len(cancelled) != 1 || cancelled[0] != "sorvete-chocolate" {
		t.Fatalf("expected cancellation recorded, got %v", view["cancelledIds"])
	}

	newOrderReq := sessionRequest(http.MethodPost, "/api/v1/cart/new-order", "", "mesa-1")
	newOrderRec := httptest.NewRecorder()
	CartStartNewOrder(svc, testLogger()).ServeHTTP(newOrderRec, newOrderReq)

	view = decodeCartView(t, newOrderRec)
	if view["orderCompleted"] != false {
		t.Fatalf("expected reset cart, got %v", view)
	}
	items, _ := view["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("expected empty cart after new order, got %v", view["items"])
	}
}

func httptestExec(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
