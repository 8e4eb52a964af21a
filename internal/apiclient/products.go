package apiclient

import (
	"context"

	"github.com/guonaihong/gout"
	"github.com/kalaicenter/kalaiweb/internal/domain"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type whatsappLinkResponse struct {
	WhatsAppLink string `json:"whatsapp_link"`
}

// Public product endpoints. These return active entities only and
// require no authentication.

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.run(ctx, gout.GET(c.url("/api/public/products")), &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := c.run(ctx, gout.GET(c.url("/api/public/products/%d", id)), &product)
	return product, err
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var resp categoriesResponse
	err := c.run(ctx, gout.GET(c.url("/api/public/categories")), &resp)
	return resp.Categories, err
}

// ProductWhatsAppLink fetches the server-generated outbound contact
// link for a product.
func (c *Client) ProductWhatsAppLink(ctx context.Context, id int64) (string, error) {
	var resp whatsappLinkResponse
	err := c.run(ctx, gout.GET(c.url("/api/public/whatsapp-link/%d", id)), &resp)
	return resp.WhatsAppLink, err
}

// Admin product endpoints. Every call carries the bearer token handed
// out by Login.

func (c *Client) Login(ctx context.Context, credentials domain.AdminLogin) (domain.AdminToken, error) {
	var token domain.AdminToken
	err := c.run(ctx, gout.POST(c.url("/api/admin/login")).SetJSON(credentials), &token)
	return token, err
}

func (c *Client) ListAllProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var products []domain.Product
	err := c.run(ctx, gout.GET(c.url("/api/admin/products")).SetHeader(bearer(token)), &products)
	return products, err
}

func (c *Client) CreateProduct(ctx context.Context, token string, form domain.ProductForm) (domain.Product, error) {
	var product domain.Product
	err := c.run(ctx, gout.POST(c.url("/api/admin/products")).SetHeader(bearer(token)).SetJSON(form), &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, form domain.ProductForm) (domain.Product, error) {
	var product domain.Product
	err := c.run(ctx, gout.PUT(c.url("/api/admin/products/%d", id)).SetHeader(bearer(token)).SetJSON(form), &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.run(ctx, gout.DELETE(c.url("/api/admin/products/%d", id)).SetHeader(bearer(token)), nil)
}

// ToggleProductActive flips the active flag server-side and returns
// the updated product.
func (c *Client) ToggleProductActive(ctx context.Context, token string, id int64) (domain.Product, error) {
	var product domain.Product
	err := c.run(ctx, gout.PATCH(c.url("/api/admin/products/%d/toggle-active", id)).SetHeader(bearer(token)), &product)
	return product, err
}

// SetProductStock sets the stock count directly via the stock PATCH
// endpoint (query parameter, not a JSON body, per the remote API).
func (c *Client) SetProductStock(ctx context.Context, token string, id int64, newStock int) (domain.Product, error) {
	var product domain.Product
	err := c.run(ctx, gout.PATCH(c.url("/api/admin/products/%d/stock", id)).
		SetQuery(gout.H{"new_stock": newStock}).
		SetHeader(bearer(token)), &product)
	return product, err
}
