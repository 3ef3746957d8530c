package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/presenters"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bind"
	"github.com/sommystore/storefront/pkg/collection"
	"github.com/sommystore/storefront/pkg/response"
)

type OrderController struct {
	orders   *services.OrderService
	checkout *services.CheckoutService
}

func NewOrderController(orders *services.OrderService, checkout *services.CheckoutService) *OrderController {
	return &OrderController{orders: orders, checkout: checkout}
}

// orderView decorates an order with its display fields.
type orderView struct {
	models.Order
	Reference     string           `json:"reference"`
	Badge         presenters.Badge `json:"badge"`
	OrderedOn     string           `json:"orderedOn"`
	DispatchedOn  string           `json:"dispatchedOn"`
	DepartedOn    string           `json:"departedOn"`
	DeliveredOn   string           `json:"deliveredOn"`
	CanCancel     bool             `json:"canCancel"`
	EstimatedFee  *float64         `json:"estimatedFee,omitempty"`
	EstimatedBack *float64         `json:"estimatedRefund,omitempty"`
}

func viewOfOrder(o models.Order) orderView {
	v := orderView{
		Order:        o,
		Reference:    o.Reference(),
		Badge:        presenters.StatusBadge(o.Status),
		OrderedOn:    presenters.FormatDate(o.OrderDate),
		DispatchedOn: presenters.FormatDate(o.DispatchDate),
		DepartedOn:   presenters.FormatDate(o.DepartureDate),
		DeliveredOn:  presenters.FormatDate(o.DeliveryDate),
		CanCancel:    presenters.CanCancel(o),
	}
	if v.CanCancel {
		q := presenters.CancellationQuote(o.Total)
		v.EstimatedFee, v.EstimatedBack = &q.Fee, &q.Refund
	}
	return v
}

// Mine lists the signed-in shopper's orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ForCurrentUser(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, collection.Map(orders, viewOfOrder))
}

// All lists every order. Admin only.
func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.AllForAdmin(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, collection.Map(orders, viewOfOrder))
}

type cancelInput struct {
	Order models.Order `json:"order"`
}

// Cancel confirms cancellation of an order.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	var input cancelInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	input.Order.ID = chi.URLParam(r, "id")

	order, err := c.orders.Cancel(r.Context(), input.Order)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOfOrder(order))
}

type statusInput struct {
	Order         models.Order       `json:"order"`
	Status        models.OrderStatus `json:"status"`
	DispatchDate  string             `json:"dispatchDate,omitempty"`
	DepartureDate string             `json:"departureDate,omitempty"`
	DeliveryDate  string             `json:"deliveryDate,omitempty"`
}

// UpdateStatus moves an order along the pipeline. Admin only.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input statusInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	input.Order.ID = chi.URLParam(r, "id")

	if !input.Status.Valid() {
		response.Error(w, http.StatusBadRequest, "unknown status")
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), input.Order, input.Status, repositories.OrderUpdate{
		DispatchDate:  input.DispatchDate,
		DepartureDate: input.DepartureDate,
		DeliveryDate:  input.DeliveryDate,
	})
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOfOrder(order))
}

// Totals previews the checkout breakdown for the current cart.
func (c *OrderController) Totals(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.checkout.Totals())
}

// Checkout validates the checkout form and places the order.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var input services.CheckoutInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.checkout.PlaceOrder(r.Context(), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, viewOfOrder(order))
}
