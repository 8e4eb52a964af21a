package domain

// Treatment currencies accepted by the remote API.
const (
	CurrencyCRC = "CRC"
	CurrencyUSD = "USD"
)

func ValidCurrency(code string) bool {
	return code == CurrencyCRC || code == CurrencyUSD
}

// Treatment is an aesthetic treatment offered by the center. Unlike
// products, treatment ids are opaque strings assigned by the server.
type Treatment struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Duration    string  `json:"duration,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// TreatmentForm is the create/update payload for a treatment.
type TreatmentForm struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Duration    string  `json:"duration,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (f *TreatmentForm) Validate() error {
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
	if !ValidCurrency(f.Currency) {
		return ErrFieldInvalid("currency", "must be CRC or USD")
	}
	return nil
}
