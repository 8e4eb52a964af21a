// Package webserver renders the public storefront and the admin
// back-office, translating HTTP requests into controller intents and
// API calls.
package webserver

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kalaicenter/kalaiweb/config"
	"github.com/kalaicenter/kalaiweb/internal/apiclient"
	"github.com/kalaicenter/kalaiweb/internal/probe"
	appsession "github.com/kalaicenter/kalaiweb/internal/session"
)

type Server struct {
	cfg   *config.AppConfig
	api   *apiclient.Client
	probe *probe.Probe
	root  *echo.Echo
}

func NewServer(cfg *config.AppConfig, api *apiclient.Client, prb *probe.Probe) *Server {
	s := &Server{cfg: cfg, api: api, probe: prb}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = jsonSerializer{}
	e.Renderer = NewRenderer()

	e.Use(middleware.Recover())
	e.Use(session.Middleware(appsession.NewCookieStore(cfg.Web.Secret)))
	e.Use(requestLogger)

	s.root = e
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.root

	e.GET("/", s.home)
	e.GET("/healthz", s.healthz)
	e.GET("/productos", s.productsPage)
	e.GET("/productos/:id", s.productDetailPage)
	e.GET("/tratamientos", s.treatmentsPage)
	e.GET("/tratamientos/:id", s.treatmentDetailPage)

	g := e.Group("/admin", s.requireAuth)
	g.GET("/dashboard", s.dashboardPage)

	g.GET("/products/new", s.productNewPage)
	g.POST("/products", s.productCreate)
	g.GET("/products/:id/edit", s.productEditPage)
	g.POST("/products/:id", s.productUpdate)
	g.POST("/products/:id/delete", s.productDelete)
	g.POST("/products/:id/toggle", s.productToggle)
	g.POST("/products/:id/stock", s.productStock)

	g.GET("/treatments/new", s.treatmentNewPage)
	g.POST("/treatments", s.treatmentCreate)
	g.GET("/treatments/:id/edit", s.treatmentEditPage)
	g.POST("/treatments/:id", s.treatmentUpdate)
	g.POST("/treatments/:id/delete", s.treatmentDelete)
	g.POST("/treatments/:id/toggle", s.treatmentToggle)

	// registered after the group: echo.Group wires a catch-all under
	// /admin for its middleware, so these must come later to win the
	// exact-path match without passing through requireAuth
	e.GET("/admin", s.loginPage)
	e.POST("/admin", s.login)
	e.POST("/admin/logout", s.logout)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Echo exposes the underlying router for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.root
}

// jsonSerializer swaps echo's encoding/json for jsoniter; the JSON
// surface here is tiny (healthz) but stays consistent with the rest
// of the stack.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(c.Request().Body).Decode(i)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		zap.L().Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
