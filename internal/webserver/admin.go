package webserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/kalaicenter/kalaiweb/internal/admin"
	"github.com/kalaicenter/kalaiweb/internal/apiclient"
	"github.com/kalaicenter/kalaiweb/internal/domain"
	"github.com/kalaicenter/kalaiweb/internal/probe"
	appsession "github.com/kalaicenter/kalaiweb/internal/session"
)

// requireAuth gates every back-office page: no token in the session
// means a redirect to the login form before any fetch is attempted.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !appsession.IsAuthenticated(c) {
			return c.Redirect(http.StatusFound, "/admin")
		}
		return next(c)
	}
}

// failAdmin reports a failed admin operation. A 401 from the API ends
// the session and forces a fresh login; anything else becomes a
// transient flash on the redirect target.
func (s *Server) failAdmin(c echo.Context, err error, message, target string) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		_ = appsession.EndWithNotice(c, appsession.FlashError, "Tu sesión expiró, ingresa de nuevo")
		return c.Redirect(http.StatusFound, "/admin")
	}
	zap.L().Error("admin operation failed", zap.String("op", message), zap.Error(err))
	appsession.Flash(c, appsession.FlashError, message)
	return c.Redirect(http.StatusFound, target)
}

type loginPageData struct {
	Flashes []appsession.Note
}

func (s *Server) loginPage(c echo.Context) error {
	if appsession.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "admin_login", loginPageData{Flashes: appsession.TakeFlashes(c)})
}

func (s *Server) login(c echo.Context) error {
	credentials := domain.AdminLogin{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	token, err := s.api.Login(c.Request().Context(), credentials)
	if err != nil {
		zap.L().Warn("admin login failed", zap.String("username", credentials.Username), zap.Error(err))
		appsession.Flash(c, appsession.FlashError, "Credenciales incorrectas")
		return c.Redirect(http.StatusFound, "/admin")
	}

	if err := appsession.Begin(c, token.AccessToken); err != nil {
		return s.failAdmin(c, err, "No se pudo iniciar la sesión", "/admin")
	}
	appsession.Flash(c, appsession.FlashSuccess, "¡Bienvenido!")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) logout(c echo.Context) error {
	_ = appsession.End(c)
	return c.Redirect(http.StatusFound, "/admin")
}

type dashboardData struct {
	Tab        string
	Products   []domain.Product
	Treatments []domain.Treatment
	Flashes    []appsession.Note
	Upstream   probe.Status
	LoadError  bool
}

func (s *Server) dashboardPage(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab != "products" {
		tab = "treatments"
	}

	dashboard := admin.NewDashboard(s.api)
	data := dashboardData{
		Tab:      tab,
		Upstream: s.probe.Last(),
	}

	err := dashboard.LoadAll(c.Request().Context(), appsession.Token(c))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return s.failAdmin(c, err, "", "/admin")
		}
		zap.L().Error("dashboard load failed", zap.Error(err))
		data.LoadError = true
	}

	data.Products = dashboard.Products.List()
	data.Treatments = dashboard.Treatments.List()
	data.Flashes = appsession.TakeFlashes(c)
	return c.Render(http.StatusOK, "admin_dashboard", data)
}

// product forms

type productFormData struct {
	Editing bool
	Product domain.Product
	Flashes []appsession.Note
}

func parseProductForm(c echo.Context) (domain.ProductForm, error) {
	price, err := cast.ToFloat64E(c.FormValue("price"))
	if err != nil {
		return domain.ProductForm{}, domain.ErrFieldInvalid("price", "must be a number")
	}
	stock, err := cast.ToIntE(c.FormValue("stock"))
	if err != nil {
		return domain.ProductForm{}, domain.ErrFieldInvalid("stock", "must be a number")
	}

	form := domain.ProductForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Category:    c.FormValue("category"),
		ImageURL:    c.FormValue("image_url"),
	}
	if err := form.Validate(); err != nil {
		return domain.ProductForm{}, err
	}
	return form, nil
}

func (s *Server) productNewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "product_form", productFormData{Flashes: appsession.TakeFlashes(c)})
}

func (s *Server) productCreate(c echo.Context) error {
	form, err := parseProductForm(c)
	if err != nil {
		appsession.Flash(c, appsession.FlashError, err.Error())
		return c.Redirect(http.StatusFound, "/admin/products/new")
	}

	ctrl := admin.ProductController(s.api)
	ctrl.OpenCreate()
	if err := ctrl.Submit(c.Request().Context(), appsession.Token(c), form); err != nil {
		return s.failAdmin(c, err, "Error al guardar producto", "/admin/products/new")
	}

	appsession.Flash(c, appsession.FlashSuccess, "Producto creado")
	return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
}

func (s *Server) productEditPage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctrl := admin.ProductController(s.api)
	if err := ctrl.LoadAll(c.Request().Context(), appsession.Token(c)); err != nil {
		return s.failAdmin(c, err, "Error al cargar datos", "/admin/dashboard?tab=products")
	}
	product, ok := ctrl.Find(id)
	if !ok {
		appsession.Flash(c, appsession.FlashError, "Producto no encontrado")
		return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
	}

	ctrl.OpenEdit(product)
	return c.Render(http.StatusOK, "product_form", productFormData{
		Editing: true,
		Product: product,
		Flashes: appsession.TakeFlashes(c),
	})
}

func (s *Server) productUpdate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	form, err := parseProductForm(c)
	if err != nil {
		appsession.Flash(c, appsession.FlashError, err.Error())
		return c.Redirect(http.StatusFound, "/admin/products/"+c.Param("id")+"/edit")
	}

	ctx := c.Request().Context()
	token := appsession.Token(c)

	ctrl := admin.ProductController(s.api)
	if err := ctrl.LoadAll(ctx, token); err != nil {
		return s.failAdmin(c, err, "Error al cargar datos", "/admin/dashboard?tab=products")
	}
	product, ok := ctrl.Find(id)
	if !ok {
		appsession.Flash(c, appsession.FlashError, "Producto no encontrado")
		return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
	}

	ctrl.OpenEdit(product)
	if err := ctrl.Submit(ctx, token, form); err != nil {
		return s.failAdmin(c, err, "Error al guardar producto", "/admin/products/"+c.Param("id")+"/edit")
	}

	appsession.Flash(c, appsession.FlashSuccess, "Producto actualizado")
	return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
}

func (s *Server) productDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	confirmed := c.FormValue("confirm") == "yes"
	ctrl := admin.ProductController(s.api)
	performed, err := ctrl.Remove(c.Request().Context(), appsession.Token(c), id, confirmed)
	if err != nil {
		return s.failAdmin(c, err, "Error al eliminar", "/admin/dashboard?tab=products")
	}
	if performed {
		appsession.Flash(c, appsession.FlashSuccess, "Producto eliminado")
	}
	return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
}

func (s *Server) productToggle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ctrl := admin.ProductController(s.api)
	if err := ctrl.ToggleActive(c.Request().Context(), appsession.Token(c), id); err != nil {
		return s.failAdmin(c, err, "Error al cambiar estado", "/admin/dashboard?tab=products")
	}
	appsession.Flash(c, appsession.FlashSuccess, "Estado actualizado")
	return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
}

func (s *Server) productStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	newStock, err := cast.ToIntE(c.FormValue("new_stock"))
	if err != nil || newStock < 0 {
		appsession.Flash(c, appsession.FlashError, "Stock inválido")
		return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
	}

	if _, err := s.api.SetProductStock(c.Request().Context(), appsession.Token(c), id, newStock); err != nil {
		return s.failAdmin(c, err, "Error al actualizar stock", "/admin/dashboard?tab=products")
	}
	appsession.Flash(c, appsession.FlashSuccess, "Stock actualizado")
	return c.Redirect(http.StatusFound, "/admin/dashboard?tab=products")
}

// treatment forms

type treatmentFormData struct {
	Editing   bool
	Treatment domain.Treatment
	Flashes   []appsession.Note
}

func parseTreatmentForm(c echo.Context) (domain.TreatmentForm, error) {
	price, err := cast.ToFloat64E(c.FormValue("price"))
	if err != nil {
		return domain.TreatmentForm{}, domain.ErrFieldInvalid("price", "must be a number")
	}

	form := domain.TreatmentForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Currency:    c.FormValue("currency"),
		Duration:    c.FormValue("duration"),
		Category:    c.FormValue("category"),
		ImageURL:    c.FormValue("image_url"),
	}
	if err := form.Validate(); err != nil {
		return domain.TreatmentForm{}, err
	}
	return form, nil
}

func (s *Server) treatmentNewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "treatment_form", treatmentFormData{Flashes: appsession.TakeFlashes(c)})
}

func (s *Server) treatmentCreate(c echo.Context) error {
	form, err := parseTreatmentForm(c)
	if err != nil {
		appsession.Flash(c, appsession.FlashError, err.Error())
		return c.Redirect(http.StatusFound, "/admin/treatments/new")
	}

	ctrl := admin.TreatmentController(s.api)
	ctrl.OpenCreate()
	if err := ctrl.Submit(c.Request().Context(), appsession.Token(c), form); err != nil {
		return s.failAdmin(c, err, "Error al guardar tratamiento", "/admin/treatments/new")
	}

	appsession.Flash(c, appsession.FlashSuccess, "Tratamiento creado")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) treatmentEditPage(c echo.Context) error {
	id := c.Param("id")

	ctrl := admin.TreatmentController(s.api)
	if err := ctrl.LoadAll(c.Request().Context(), appsession.Token(c)); err != nil {
		return s.failAdmin(c, err, "Error al cargar datos", "/admin/dashboard")
	}
	treatment, ok := ctrl.Find(id)
	if !ok {
		appsession.Flash(c, appsession.FlashError, "Tratamiento no encontrado")
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}

	ctrl.OpenEdit(treatment)
	return c.Render(http.StatusOK, "treatment_form", treatmentFormData{
		Editing:   true,
		Treatment: treatment,
		Flashes:   appsession.TakeFlashes(c),
	})
}

func (s *Server) treatmentUpdate(c echo.Context) error {
	id := c.Param("id")

	form, err := parseTreatmentForm(c)
	if err != nil {
		appsession.Flash(c, appsession.FlashError, err.Error())
		return c.Redirect(http.StatusFound, "/admin/treatments/"+id+"/edit")
	}

	ctx := c.Request().Context()
	token := appsession.Token(c)

	ctrl := admin.TreatmentController(s.api)
	if err := ctrl.LoadAll(ctx, token); err != nil {
		return s.failAdmin(c, err, "Error al cargar datos", "/admin/dashboard")
	}
	treatment, ok := ctrl.Find(id)
	if !ok {
		appsession.Flash(c, appsession.FlashError, "Tratamiento no encontrado")
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}

	ctrl.OpenEdit(treatment)
	if err := ctrl.Submit(ctx, token, form); err != nil {
		return s.failAdmin(c, err, "Error al guardar tratamiento", "/admin/treatments/"+id+"/edit")
	}

	appsession.Flash(c, appsession.FlashSuccess, "Tratamiento actualizado")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) treatmentDelete(c echo.Context) error {
	id := c.Param("id")
	confirmed := c.FormValue("confirm") == "yes"

	ctrl := admin.TreatmentController(s.api)
	performed, err := ctrl.Remove(c.Request().Context(), appsession.Token(c), id, confirmed)
	if err != nil {
		return s.failAdmin(c, err, "Error al eliminar", "/admin/dashboard")
	}
	if performed {
		appsession.Flash(c, appsession.FlashSuccess, "Tratamiento eliminado")
	}
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) treatmentToggle(c echo.Context) error {
	id := c.Param("id")

	ctrl := admin.TreatmentController(s.api)
	if err := ctrl.ToggleActive(c.Request().Context(), appsession.Token(c), id); err != nil {
		return s.failAdmin(c, err, "Error al cambiar estado", "/admin/dashboard")
	}
	appsession.Flash(c, appsession.FlashSuccess, "Estado actualizado")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}
