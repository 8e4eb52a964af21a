package admin

import (
	"context"

	"github.com/kalaicenter/kalaiweb/internal/apiclient"
	"github.com/kalaicenter/kalaiweb/internal/domain"
)

// productResource adapts the API client to the Resource interface.
type productResource struct {
	api *apiclient.Client
}

func (r productResource) ListAll(ctx context.Context, token string) ([]domain.Product, error) {
	return r.api.ListAllProducts(ctx, token)
}

func (r productResource) Create(ctx context.Context, token string, form domain.ProductForm) (domain.Product, error) {
	return r.api.CreateProduct(ctx, token, form)
}

func (r productResource) Update(ctx context.Context, token string, id int64, form domain.ProductForm) (domain.Product, error) {
	return r.api.UpdateProduct(ctx, token, id, form)
}

func (r productResource) Delete(ctx context.Context, token string, id int64) error {
	return r.api.DeleteProduct(ctx, token, id)
}

func (r productResource) ToggleActive(ctx context.Context, token string, id int64) (domain.Product, error) {
	return r.api.ToggleProductActive(ctx, token, id)
}

type treatmentResource struct {
	api *apiclient.Client
}

func (r treatmentResource) ListAll(ctx context.Context, token string) ([]domain.Treatment, error) {
	return r.api.ListAllTreatments(ctx, token)
}

func (r treatmentResource) Create(ctx context.Context, token string, form domain.TreatmentForm) (domain.Treatment, error) {
	return r.api.CreateTreatment(ctx, token, form)
}

func (r treatmentResource) Update(ctx context.Context, token string, id string, form domain.TreatmentForm) (domain.Treatment, error) {
	return r.api.UpdateTreatment(ctx, token, id, form)
}

func (r treatmentResource) Delete(ctx context.Context, token string, id string) error {
	return r.api.DeleteTreatment(ctx, token, id)
}

func (r treatmentResource) ToggleActive(ctx context.Context, token string, id string) (domain.Treatment, error) {
	return r.api.ToggleTreatmentActive(ctx, token, id)
}

// ProductController builds a CRUD controller bound to the product
// admin endpoints.
func ProductController(api *apiclient.Client) *Controller[int64, domain.Product, domain.ProductForm] {
	return NewController[int64, domain.Product, domain.ProductForm](
		productResource{api: api},
		func(p domain.Product) int64 { return p.ID },
	)
}

// TreatmentController builds a CRUD controller bound to the treatment
// admin endpoints.
func TreatmentController(api *apiclient.Client) *Controller[string, domain.Treatment, domain.TreatmentForm] {
	return NewController[string, domain.Treatment, domain.TreatmentForm](
		treatmentResource{api: api},
		func(t domain.Treatment) string { return t.ID },
	)
}
