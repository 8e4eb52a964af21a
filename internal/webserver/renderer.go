package webserver

import (
	"embed"
	"html/template"
	"io"
	"math"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kalaicenter/kalaiweb/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Prices are shown the way the center writes them: colones with
// thousands separators, dollars for USD treatments.
var pricePrinter = message.NewPrinter(language.Spanish)

func formatMoney(currency string, amount float64) string {
	symbol := "₡"
	if currency == domain.CurrencyUSD {
		symbol = "$"
	}
	// whole amounts lose the decimals, matching the storefront's
	// display convention
	if amount == math.Trunc(amount) {
		return symbol + pricePrinter.Sprintf("%d", int64(amount))
	}
	return symbol + pricePrinter.Sprintf("%.2f", amount)
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"money": formatMoney,
		"crc":   func(amount float64) string { return formatMoney(domain.CurrencyCRC, amount) },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
