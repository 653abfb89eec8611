package printing

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TemplateEngine renders HTML templates with formatting helpers for money,
// dates and enum labels
type TemplateEngine struct {
	funcMap  template.FuncMap
	currency string
	lang     language.Tag
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithCurrency sets the symbol printed before amounts
func WithCurrency(symbol string) TemplateEngineOption {
	return func(e *TemplateEngine) {
		e.currency = symbol
	}
}

// WithLanguage sets the locale used for digit grouping and title casing
func WithLanguage(tag language.Tag) TemplateEngineOption {
	return func(e *TemplateEngine) {
		e.lang = tag
	}
}

// NewTemplateEngine creates a template engine
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{currency: "KES", lang: language.English}
	for _, opt := range opts {
		opt(e)
	}

	printer := message.NewPrinter(e.lang)
	caser := cases.Title(e.lang)

	e.funcMap = template.FuncMap{
		"formatMoney": func(d decimal.Decimal) string {
			return e.currency + " " + formatAmount(printer, d)
		},
		"formatAmount": func(d decimal.Decimal) string {
			return formatAmount(printer, d)
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatPeriod": func(month, year int) string {
			if month < 1 || month > 12 {
				return ""
			}
			return time.Month(month).String() + " " + strconv.Itoa(year)
		},
		"label": func(s string) string {
			return caser.String(strings.ReplaceAll(s, "_", " "))
		},
		"upper":   strings.ToUpper,
		"default": defaultString,
	}
	return e
}

// Parse compiles a named template with the engine's helpers
func (e *TemplateEngine) Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(text)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse template "+name, err)
	}
	return tmpl, nil
}

// Execute runs tmpl against data
func (e *TemplateEngine) Execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute template "+tmpl.Name(), err)
	}
	return buf.String(), nil
}

// formatAmount prints d with two decimals and locale digit grouping,
// e.g. 30700 -> "30,700.00"
func formatAmount(p *message.Printer, d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return p.Sprintf("%.2f", f)
}

func defaultString(fallback, s string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
