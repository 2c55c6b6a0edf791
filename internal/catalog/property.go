package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultContact is shown when a listing carries no contact line.
const DefaultContact = "Contact agent for more details."

// Property is a single tokenized listing.
type Property struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Location         string   `yaml:"location"`
	Contact          string   `yaml:"contact"`
	Price            string   `yaml:"price"`
	ImageURL         string   `yaml:"image_url"`
	Features         []string `yaml:"features"`
	FundedPercentage int      `yaml:"funded_percentage"`
}

// ContactLine returns the contact text or the default prompt.
func (p Property) ContactLine() string {
	if c := strings.TrimSpace(p.Contact); c != "" {
		return c
	}
	return DefaultContact
}

// Raised is the subscribed share of the listing price.
func (p Property) Raised() decimal.Decimal {
	price := decimal.NewFromInt(PriceMagnitude(p.Price))
	pct := decimal.NewFromInt(int64(ClampFunded(p.FundedPercentage)))
	return price.Mul(pct).Div(decimal.NewFromInt(100))
}

// RaisedLabel formats Raised using the unit found in the price string.
func (p Property) RaisedLabel() string {
	return FormatAmount(p.Raised(), PriceUnit(p.Price))
}

// ClampFunded forces a funded percentage into [0, 100].
func ClampFunded(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// PriceMagnitude drops every non-digit from a display price and parses the
// rest. Strings without digits yield 0; overflow saturates.
func PriceMagnitude(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// PriceUnit extracts the currency marker from a display price, e.g. "ICP"
// from "350,000 ICP" or "$" from "$350,000".
func PriceUnit(price string) string {
	var b strings.Builder
	for _, r := range price {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || r == ',' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a whole amount with thousands separators. Letter units
// are suffixed, symbols are prefixed.
func FormatAmount(d decimal.Decimal, unit string) string {
	digits := amountPrinter.Sprintf("%d", d.Round(0).IntPart())
	if unit == "" {
		return digits
	}
	r := []rune(unit)[0]
	if unicode.IsLetter(r) {
		return digits + " " + unit
	}
	return unit + digits
}
