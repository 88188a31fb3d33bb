// Package report renders a projection run for people: Markdown and HTML
// tables, CSV export, and the JSON bundle served by the API.
// It re-keys and unit-converts engine output; it never recomputes carried state.
package report

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a locale is empty or cannot be parsed.
var DefaultLocale = language.Japanese

// Formatter prints money and counts with locale-aware digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale such as "ja" or "en-US".
func NewFormatter(locale string) *Formatter {
	tag := DefaultLocale
	if locale = strings.TrimSpace(locale); locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Yen formats a whole-yen amount, e.g. ¥1,500,000.
func (f *Formatter) Yen(v float64) string {
	if v < 0 {
		return "-¥" + f.p.Sprintf("%d", int64(math.Round(-v)))
	}
	return "¥" + f.p.Sprintf("%d", int64(math.Round(v)))
}

// Millions converts yen to millions with the given decimals, e.g. 1.5 for ¥1,500,000.
func (f *Formatter) Millions(v float64, decimals int) string {
	return f.p.Sprintf(floatVerb(decimals), v/1_000_000)
}

// YenMillions formats an amount as ¥{millions}M.
func (f *Formatter) YenMillions(v float64, decimals int) string {
	if v < 0 {
		return "-¥" + f.Millions(-v, decimals) + "M"
	}
	return "¥" + f.Millions(v, decimals) + "M"
}

// Number formats a plain quantity such as a customer count.
func (f *Formatter) Number(v float64, decimals int) string {
	return f.p.Sprintf(floatVerb(decimals), v)
}

// Percent formats a percentage value with one decimal, e.g. 77.8%.
func (f *Formatter) Percent(v float64) string {
	return f.p.Sprintf("%.1f", v) + "%"
}

func floatVerb(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return "%." + strconv.Itoa(decimals) + "f"
}
