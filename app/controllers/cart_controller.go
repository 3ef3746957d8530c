package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bind"
	"github.com/sommystore/storefront/pkg/response"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

type cartView struct {
	Items models.Cart `json:"items"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func viewOf(cart models.Cart) cartView {
	return cartView{Items: cart, Total: cart.Total(), Count: cart.Count()}
}

// Show returns the current cart with its derived total and count.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, viewOf(c.cart.Items()))
}

type addLineInput struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Add merges a product into the cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var input addLineInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.cart.Add(input.Product, input.Quantity)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOf(cart))
}

type quantityInput struct {
	Quantity int `json:"quantity"`
}

// SetQuantity replaces the quantity of the line at {index}. Zero and
// negative values clamp to 1; removal is its own endpoint.
func (c *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	index, err := lineIndex(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid line index")
		return
	}

	var input quantityInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.cart.SetQuantity(index, input.Quantity)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOf(cart))
}

// Remove deletes the line at {index}.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	index, err := lineIndex(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid line index")
		return
	}

	cart, err := c.cart.Remove(index)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOf(cart))
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.cart.Clear(); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, viewOf(models.Cart{}))
}

func lineIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
