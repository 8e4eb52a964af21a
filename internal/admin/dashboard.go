package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kalaicenter/kalaiweb/internal/apiclient"
	"github.com/kalaicenter/kalaiweb/internal/domain"
)

// Dashboard is the combined back-office view over both entity types.
// Its two list fetches run concurrently and the view proceeds only
// once both have settled.
type Dashboard struct {
	Products   *Controller[int64, domain.Product, domain.ProductForm]
	Treatments *Controller[string, domain.Treatment, domain.TreatmentForm]
}

func NewDashboard(api *apiclient.Client) *Dashboard {
	return &Dashboard{
		Products:   ProductController(api),
		Treatments: TreatmentController(api),
	}
}

// LoadAll fetches both lists in parallel. The first error wins; the
// other fetch still settles before LoadAll returns.
func (d *Dashboard) LoadAll(ctx context.Context, token string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Products.LoadAll(ctx, token) })
	g.Go(func() error { return d.Treatments.LoadAll(ctx, token) })
	return g.Wait()
}
