package repositories

import (
	"context"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/http"
)

// ProductRepository reads and (for admins) writes the backend catalogue.
type ProductRepository struct {
	base string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{base: baseURL()}
}

// All fetches the full catalogue.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	resp, err := http.Get(r.base + "/api/products").WithContext(ctx).Send()
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp, "Failed to load products")
	}

	var products []models.Product
	if err := resp.JSON(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// Find fetches a single product by ID.
func (r *ProductRepository) Find(ctx context.Context, id string) (models.Product, error) {
	var product models.Product

	resp, err := http.Get(r.base + "/api/products/" + id).WithContext(ctx).Send()
	if err != nil {
		return product, err
	}
	if !resp.OK() {
		return product, apiError(resp, "Product not found")
	}

	err = resp.JSON(&product)
	return product, err
}

// Create adds a product. Admin only; token goes in the Authorization header.
func (r *ProductRepository) Create(ctx context.Context, token string, input models.ProductInput) (models.Product, error) {
	var product models.Product

	resp, err := http.Post(r.base+"/api/products").
		WithContext(ctx).
		Bearer(token).
		Body(input).
		Send()
	if err != nil {
		return product, err
	}
	if !resp.OK() {
		return product, apiError(resp, "Failed to create product")
	}

	err = resp.JSON(&product)
	return product, err
}

// Update replaces a product's fields. Admin only.
func (r *ProductRepository) Update(ctx context.Context, token, id string, input models.ProductInput) (models.Product, error) {
	var product models.Product

	resp, err := http.Put(r.base+"/api/products/"+id).
		WithContext(ctx).
		Bearer(token).
		Body(input).
		Send()
	if err != nil {
		return product, err
	}
	if !resp.OK() {
		return product, apiError(resp, "Failed to update product")
	}

	err = resp.JSON(&product)
	return product, err
}

// Delete removes a product. Admin only.
func (r *ProductRepository) Delete(ctx context.Context, token, id string) error {
	resp, err := http.Delete(r.base + "/api/products/" + id).
		WithContext(ctx).
		Bearer(token).
		Send()
	if err != nil {
		return err
	}
	if !resp.OK() {
		return apiError(resp, "Failed to delete product")
	}
	return nil
}
