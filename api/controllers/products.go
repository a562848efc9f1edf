package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	catalogsvc "github.com/gelaboca/gelaboca-backend/internal/catalog"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

// ListProducts serves the active catalog. The listing never fails: with the
// index down it degrades to the static sample catalog, still HTTP 200, so the
// tablet menu keeps rendering.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := svc.ListProducts(r.Context())
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "count", len(products)), "catalog listing served")
		}
		writeFlatJSON(w, http.StatusOK, products)
	}
}

// ListPromotionalProducts serves the promotional carousel (active and
// promotional, capped).
func ListPromotionalProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := svc.ListPromotional(r.Context())
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "count", len(products)), "promotional listing served")
		}
		writeFlatJSON(w, http.StatusOK, products)
	}
}

// writeFlatJSON writes payloads that keep the original frontend contract
// instead of the success envelope.
func writeFlatJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
