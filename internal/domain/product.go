package domain

// Product is a retail catalog item as served by the remote API.
// IDs and timestamps are server-assigned; prices are in colones.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// ProductForm is the create/update payload for a product. Server-assigned
// fields are omitted; a create defaults to active.
type ProductForm struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (f *ProductForm) Validate() error {
	if f.Name == "" {
		return ErrFieldRequired("name")
	}
	if f.Description == "" {
		return ErrFieldRequired("description")
	}
	if f.Category == "" {
		return ErrFieldRequired("category")
	}
	if f.Price < 0 {
		return ErrFieldInvalid("price", "must be >= 0")
	}
	if f.Stock < 0 {
		return ErrFieldInvalid("stock", "must be >= 0")
	}
	return nil
}
