package domain

import (
	"errors"
	"testing"
)

func TestProductFormValidate(t *testing.T) {
	valid := ProductForm{
		Name:        "Crema Hidratante",
		Description: "Crema facial con ácido hialurónico",
		Price:       12500,
		Stock:       10,
		Category:    "Facial",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(f *ProductForm)
		field  string
	}{
		{"missing name", func(f *ProductForm) { f.Name = "" }, "name"},
		{"missing description", func(f *ProductForm) { f.Description = "" }, "description"},
		{"missing category", func(f *ProductForm) { f.Category = "" }, "category"},
		{"negative price", func(f *ProductForm) { f.Price = -1 }, "price"},
		{"negative stock", func(f *ProductForm) { f.Stock = -5 }, "stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			err := f.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %T", err)
			}
			if fe.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, fe.Field)
			}
		})
	}
}

func TestTreatmentFormValidate(t *testing.T) {
	valid := TreatmentForm{
		Name:        "Hydra Facial",
		Description: "Limpieza facial profunda",
		Price:       45,
		Currency:    CurrencyUSD,
		Category:    "Facial",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	f := valid
	f.Currency = "EUR"
	err := f.Validate()
	if err == nil {
		t.Fatal("expected error for unrecognized currency")
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "currency" {
		t.Fatalf("expected currency field error, got %v", err)
	}

	f = valid
	f.Currency = CurrencyCRC
	if err := f.Validate(); err != nil {
		t.Fatalf("CRC should be accepted, got %v", err)
	}
}
