package webserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalaicenter/kalaiweb/internal/catalog"
	"github.com/kalaicenter/kalaiweb/internal/domain"
)

type homeData struct {
	Treatments []domain.Treatment
	Products   []domain.Product
	LoadError  bool
}

func (s *Server) home(c echo.Context) error {
	ctx := c.Request().Context()
	data := homeData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		treatments, err := s.api.ListTreatments(gctx)
		data.Treatments = featured(treatments)
		return err
	})
	g.Go(func() error {
		products, err := s.api.ListProducts(gctx)
		data.Products = featured(products)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("home page load failed", zap.Error(err))
		data.LoadError = true
	}

	return c.Render(http.StatusOK, "home", data)
}

// featured keeps the first three entries for the home page strips.
func featured[E any](items []E) []E {
	if len(items) > 3 {
		return items[:3]
	}
	return items
}

type catalogPageData struct {
	Query      catalog.Query
	Categories []string
	LoadError  bool

	Products   []domain.Product
	Treatments []domain.Treatment
	Total      int
}

func queryFromRequest(c echo.Context) catalog.Query {
	q := catalog.Query{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	if q.Category == "" {
		q.Category = catalog.CategoryAll
	}
	return q
}

func (s *Server) productsPage(c echo.Context) error {
	ctx := c.Request().Context()
	data := catalogPageData{Query: queryFromRequest(c)}

	var products []domain.Product
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.api.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Categories, err = s.api.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("products page load failed", zap.Error(err))
		data.LoadError = true
	}

	data.Total = len(products)
	data.Products = catalog.FilterProducts(products, data.Query)
	return c.Render(http.StatusOK, "products", data)
}

func (s *Server) treatmentsPage(c echo.Context) error {
	ctx := c.Request().Context()
	data := catalogPageData{Query: queryFromRequest(c)}

	var treatments []domain.Treatment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		treatments, err = s.api.ListTreatments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Categories, err = s.api.ListTreatmentCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("treatments page load failed", zap.Error(err))
		data.LoadError = true
	}

	data.Total = len(treatments)
	data.Treatments = catalog.FilterTreatments(treatments, data.Query)
	return c.Render(http.StatusOK, "treatments", data)
}

type productDetailData struct {
	Product      domain.Product
	WhatsAppLink string
}

func (s *Server) productDetailPage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctx := c.Request().Context()
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		zap.L().Error("product detail load failed", zap.Int64("id", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}

	// the contact link is cosmetic; a failure falls back to no button
	link, err := s.api.ProductWhatsAppLink(ctx, id)
	if err != nil {
		zap.L().Warn("whatsapp link load failed", zap.Int64("id", id), zap.Error(err))
	}

	return c.Render(http.StatusOK, "product_detail", productDetailData{Product: product, WhatsAppLink: link})
}

type treatmentDetailData struct {
	Treatment    domain.Treatment
	WhatsAppLink string
}

func (s *Server) treatmentDetailPage(c echo.Context) error {
	id := c.Param("id")

	ctx := c.Request().Context()
	treatment, err := s.api.GetTreatment(ctx, id)
	if err != nil {
		zap.L().Error("treatment detail load failed", zap.String("id", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusNotFound, "tratamiento no encontrado")
	}

	link, err := s.api.TreatmentWhatsAppLink(ctx, id)
	if err != nil {
		zap.L().Warn("whatsapp link load failed", zap.String("id", id), zap.Error(err))
	}

	return c.Render(http.StatusOK, "treatment_detail", treatmentDetailData{Treatment: treatment, WhatsAppLink: link})
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"upstream": s.probe.Last(),
	})
}
