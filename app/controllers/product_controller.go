package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bind"
	"github.com/sommystore/storefront/pkg/response"
)

type ProductController struct {
	products *repositories.ProductRepository
	auth     *services.AuthService
}

func NewProductController(products *repositories.ProductRepository, auth *services.AuthService) *ProductController {
	return &ProductController{products: products, auth: auth}
}

// Index lists the catalogue.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, products)
}

// Show fetches one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

// Create adds a product to the catalogue. Admin only.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	token, err := c.auth.AdminToken()
	if err != nil {
		fail(w, err)
		return
	}

	var input models.ProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(r.Context(), token, input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, product)
}

// Update edits a product. Admin only.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	token, err := c.auth.AdminToken()
	if err != nil {
		fail(w, err)
		return
	}

	var input models.ProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(r.Context(), token, chi.URLParam(r, "id"), input)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

// Delete removes a product. Admin only.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	token, err := c.auth.AdminToken()
	if err != nil {
		fail(w, err)
		return
	}

	if err := c.products.Delete(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, nil)
}
