// Package render turns stock records into the dashboard's HTML fragments.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Dewansh29/StockPulse/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type PageData struct {
	Title       string
	Suggestions []string
	Search      SearchBox
	Stocks      []models.StockRecord
	Summary     models.Summary
	SocketPath  string
}

type SearchBox struct {
	Value  string
	Active bool
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"direction": direction,
		"arrow":     arrow,
		"money":     money,
		"signed":    signed,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Card renders a single stock card.
func (r *Renderer) Card(record models.StockRecord) (string, error) {
	return r.fragment("card", record)
}

// Grid renders every record as a grid item, in order.
func (r *Renderer) Grid(records []models.StockRecord) (string, error) {
	return r.fragment("grid", records)
}

func (r *Renderer) Summary(s models.Summary) (string, error) {
	return r.fragment("summary", s)
}

func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

func (r *Renderer) fragment(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func direction(r models.StockRecord) string {
	if r.IsPositive {
		return "positive"
	}
	return "negative"
}

func arrow(r models.StockRecord) string {
	if r.IsPositive {
		return "▲"
	}
	return "▼"
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// signed prefixes a "+" on positive records; negative values carry their own sign.
// The output is a formatted decimal, so it is marked safe to keep the "+" literal.
func signed(r models.StockRecord, d decimal.Decimal) template.HTML {
	if r.IsPositive {
		return template.HTML("+" + d.StringFixed(2))
	}
	return template.HTML(d.StringFixed(2))
}
