package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gelaboca/gelaboca-backend/api/middleware"
	"github.com/gelaboca/gelaboca-backend/api/responses"
	"github.com/gelaboca/gelaboca-backend/api/validators"
	cartsvc "github.com/gelaboca/gelaboca-backend/internal/cart"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

type cartView struct {
	Items          []cartsvc.Item `json:"items"`
	FinalizedIDs   []string       `json:"finalizedIds"`
	CancelledIDs   []string       `json:"cancelledIds"`
	OrderCompleted bool           `json:"orderCompleted"`
	TotalItems     int            `json:"totalItems"`
	TotalPrice     float64        `json:"totalPrice"`
}

func newCartView(state cartsvc.State) cartView {
	items := state.Items
	if items == nil {
		items = []cartsvc.Item{}
	}
	finalized := state.FinalizedIDs
	if finalized == nil {
		finalized = []string{}
	}
	cancelled := state.CancelledIDs
	if cancelled == nil {
		cancelled = []string{}
	}
	total, _ := state.TotalPrice().Float64()
	return cartView{
		Items:          items,
		FinalizedIDs:   finalized,
		CancelledIDs:   cancelled,
		OrderCompleted: state.OrderCompleted,
		TotalItems:     state.TotalItems(),
		TotalPrice:     total,
	}
}

type addItemRequest struct {
	ProductID string  `json:"id" validate:"required"`
	Name      string  `json:"nome" validate:"required"`
	Price     float64 `json:"valor" validate:"gte=0"`
	Quantity  int     `json:"quantidade,omitempty" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantidade" validate:"required"`
}

// CartFetch returns the session's cart.
func CartFetch(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.Get(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartAddItem adds a line or bumps its quantity.
func CartAddItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.AddItem(r.Context(), middleware.SessionIDFromContext(r.Context()), cartsvc.Item{
			ProductID: payload.ProductID,
			Name:      payload.Name,
			Price:     payload.Price,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding item"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartRemoveItem drops a line unless it belongs to a placed order.
func CartRemoveItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		state, err := svc.RemoveItem(r.Context(), middleware.SessionIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing item"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartUpdateQuantity sets a line's quantity; zero or less removes the line.
func CartUpdateQuantity(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.UpdateQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating quantity"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartClear removes every editable line.
func CartClear(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.Clear(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartFinalize places the order and archives it for the staff.
func CartFinalize(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.Finalize(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalizing order"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartRequestCancellation flags a finalized line for staff cancellation.
func CartRequestCancellation(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		state, err := svc.RequestCancellation(r.Context(), middleware.SessionIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "requesting cancellation"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartStartNewOrder resets the session to an empty cart.
func CartStartNewOrder(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.StartNewOrder(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "starting new order"))
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}
