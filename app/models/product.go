package models

// Product is a catalogue entry as served by the backend.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
}

// FirstImage returns the primary image URL, or "" when the product has none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string   `json:"name"        validate:"required,min=2,max=200"`
	Price       float64  `json:"price"       validate:"numeric,min=0"`
	Description string   `json:"description" validate:"nullable,max=5000"`
	Images      []string `json:"images"      validate:"nullable"`
}
