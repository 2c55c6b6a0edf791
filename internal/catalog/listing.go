package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Order is a listing sort order.
type Order string

const (
	OrderNone      Order = ""
	OrderPriceAsc  Order = "lowToHigh"
	OrderPriceDesc Order = "highToLow"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.TrimSpace(s)); o {
	case OrderNone, OrderPriceAsc, OrderPriceDesc:
		return o, nil
	default:
		return OrderNone, fmt.Errorf("unknown sort order %q", s)
	}
}

func (o Order) Label() string {
	switch o {
	case OrderPriceAsc:
		return "Price: Low to High"
	case OrderPriceDesc:
		return "Price: High to Low"
	default:
		return "Sort by"
	}
}

// Next cycles none -> ascending -> descending -> none.
func (o Order) Next() Order {
	switch o {
	case OrderNone:
		return OrderPriceAsc
	case OrderPriceAsc:
		return OrderPriceDesc
	default:
		return OrderNone
	}
}

// Sort returns a stably ordered copy of props.
func Sort(props []Property, order Order) []Property {
	out := make([]Property, len(props))
	copy(out, props)
	switch order {
	case OrderPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return PriceMagnitude(out[i].Price) < PriceMagnitude(out[j].Price)
		})
	case OrderPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return PriceMagnitude(out[i].Price) > PriceMagnitude(out[j].Price)
		})
	}
	return out
}

// Filter keeps listings whose title, location or description contain the
// query, or whose title/location words are within a small edit distance of
// every query term. An empty query keeps everything.
func Filter(props []Property, query string) []Property {
	terms := words(query)
	if len(terms) == 0 {
		out := make([]Property, len(props))
		copy(out, props)
		return out
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []Property
	for _, p := range props {
		if matches(p, needle, terms) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Property, needle string, terms []string) bool {
	for _, field := range []string{p.Title, p.Location, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	candidates := append(words(p.Title), words(p.Location)...)
	for _, term := range terms {
		if !fuzzyContains(candidates, term) {
			return false
		}
	}
	return true
}

func fuzzyContains(candidates []string, term string) bool {
	limit := typoBudget(term)
	for _, c := range candidates {
		if strings.HasPrefix(c, term) {
			return true
		}
		if levenshtein.ComputeDistance(c, term) <= limit {
			return true
		}
	}
	return false
}

func typoBudget(term string) int {
	switch n := len([]rune(term)); {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
