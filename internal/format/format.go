package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Prices renders whole-unit price labels for one currency and locale.
type Prices struct {
	currency string
	symbol   string
	locale   language.Tag
	printer  *message.Printer
}

// NewPrices returns a formatter. Unparseable locales fall back to English.
// Example: NewPrices("INR", "en-IN").Format(decimal.NewFromInt(12999)) => "₹12,999"
func NewPrices(currency, locale string) *Prices {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return &Prices{currency: currency, symbol: symbol, locale: tag, printer: message.NewPrinter(tag)}
}

// Format rounds amount half away from zero to whole units with locale digit grouping.
func (p *Prices) Format(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return sign + p.symbol + p.printer.Sprintf("%d", whole)
}

// Currency reports the ISO code in use.
func (p *Prices) Currency() string {
	return p.currency
}

// Locale reports the language tag used for grouping and collation.
func (p *Prices) Locale() language.Tag {
	return p.locale
}
