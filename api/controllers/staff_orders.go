package controllers

import (
	"net/http"
	"time"

	"github.com/gelaboca/gelaboca-backend/api/responses"
	"github.com/gelaboca/gelaboca-backend/api/validators"
	ordersvc "github.com/gelaboca/gelaboca-backend/internal/orders"
	"github.com/gelaboca/gelaboca-backend/pkg/db/models"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

type staffOrderItemView struct {
	ProductID             string `json:"productId"`
	ProductName           string `json:"productName"`
	Quantity              int    `json:"quantity"`
	UnitPrice             string `json:"unitPrice"`
	LineSubtotal          string `json:"lineSubtotal"`
	CancellationRequested bool   `json:"cancellationRequested"`
}

type staffOrderView struct {
	ID         string               `json:"id"`
	SessionID  string               `json:"sessionId"`
	Status     string               `json:"status"`
	TotalPrice string               `json:"totalPrice"`
	CreatedAt  time.Time            `json:"createdAt"`
	Items      []staffOrderItemView `json:"items"`
}

func newStaffOrderView(order models.Order) staffOrderView {
	view := staffOrderView{
		ID:         order.ID.String(),
		SessionID:  order.SessionID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.StringFixed(2),
		CreatedAt:  order.CreatedAt,
		Items:      make([]staffOrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, staffOrderItemView{
			ProductID:             item.ProductID,
			ProductName:           item.ProductName,
			Quantity:              item.Quantity,
			UnitPrice:             item.UnitPrice.StringFixed(2),
			LineSubtotal:          item.LineSubtotal.StringFixed(2),
			CancellationRequested: item.CancellationRequested,
		})
	}
	return view
}

// StaffOrders lists archived orders, newest first, so staff can review placed
// orders and pending cancellation requests.
func StaffOrders(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders"))
			return
		}

		views := make([]staffOrderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, newStaffOrderView(order))
		}
		responses.WriteSuccess(w, views)
	}
}
