package apiclient

import (
	"context"

	"github.com/guonaihong/gout"
	"github.com/kalaicenter/kalaiweb/internal/domain"
)

// Treatment analogues of the product endpoints. Treatment ids are
// opaque strings, so they are passed through unparsed.

func (c *Client) ListTreatments(ctx context.Context) ([]domain.Treatment, error) {
	var treatments []domain.Treatment
	err := c.run(ctx, gout.GET(c.url("/api/public/treatments")), &treatments)
	return treatments, err
}

func (c *Client) GetTreatment(ctx context.Context, id string) (domain.Treatment, error) {
	var treatment domain.Treatment
	err := c.run(ctx, gout.GET(c.url("/api/public/treatments/%s", id)), &treatment)
	return treatment, err
}

func (c *Client) ListTreatmentCategories(ctx context.Context) ([]string, error) {
	var resp categoriesResponse
	err := c.run(ctx, gout.GET(c.url("/api/public/treatments/categories")), &resp)
	return resp.Categories, err
}

func (c *Client) TreatmentWhatsAppLink(ctx context.Context, id string) (string, error) {
	var resp whatsappLinkResponse
	err := c.run(ctx, gout.GET(c.url("/api/public/whatsapp-treatment/%s", id)), &resp)
	return resp.WhatsAppLink, err
}

func (c *Client) ListAllTreatments(ctx context.Context, token string) ([]domain.Treatment, error) {
	var treatments []domain.Treatment
	err := c.run(ctx, gout.GET(c.url("/api/admin/treatments")).SetHeader(bearer(token)), &treatments)
	return treatments, err
}

func (c *Client) CreateTreatment(ctx context.Context, token string, form domain.TreatmentForm) (domain.Treatment, error) {
	var treatment domain.Treatment
	err := c.run(ctx, gout.POST(c.url("/api/admin/treatments")).SetHeader(bearer(token)).SetJSON(form), &treatment)
	return treatment, err
}

func (c *Client) UpdateTreatment(ctx context.Context, token string, id string, form domain.TreatmentForm) (domain.Treatment, error) {
	var treatment domain.Treatment
	err := c.run(ctx, gout.PUT(c.url("/api/admin/treatments/%s", id)).SetHeader(bearer(token)).SetJSON(form), &treatment)
	return treatment, err
}

func (c *Client) DeleteTreatment(ctx context.Context, token string, id string) error {
	return c.run(ctx, gout.DELETE(c.url("/api/admin/treatments/%s", id)).SetHeader(bearer(token)), nil)
}

func (c *Client) ToggleTreatmentActive(ctx context.Context, token string, id string) (domain.Treatment, error) {
	var treatment domain.Treatment
	err := c.run(ctx, gout.PATCH(c.url("/api/admin/treatments/%s/toggle-active", id)).SetHeader(bearer(token)), &treatment)
	return treatment, err
}
