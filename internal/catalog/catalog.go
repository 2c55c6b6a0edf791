// Package catalog holds the read-only property listings and the logic the
// views run over them: lookup, resolution, ordering and filtering.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingID   = errors.New("property id required")
	ErrDuplicateID = errors.New("duplicate property id")
)

// Lookup finds a property by exact id.
type Lookup interface {
	Find(id string) (Property, bool)
}

// Catalog is an ordered, immutable set of properties.
type Catalog struct {
	props []Property
	byID  map[string]int
}

// New validates ids and clamps funded percentages. The input is copied.
func New(props []Property) (*Catalog, error) {
	c := &Catalog{
		props: make([]Property, 0, len(props)),
		byID:  make(map[string]int, len(props)),
	}
	for _, p := range props {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingID, p.Title)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		p.FundedPercentage = ClampFunded(p.FundedPercentage)
		p.Features = append([]string(nil), p.Features...)
		c.byID[p.ID] = len(c.props)
		c.props = append(c.props, p)
	}
	return c, nil
}

// All returns the listings in catalog order.
func (c *Catalog) All() []Property {
	if c == nil {
		return nil
	}
	out := make([]Property, len(c.props))
	copy(out, c.props)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.props)
}

func (c *Catalog) Find(id string) (Property, bool) {
	if c == nil {
		return Property{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Property{}, false
	}
	return c.props[idx], true
}

// Stats summarises the catalog for the landing page.
type Stats struct {
	Properties    int
	TotalListed   int64
	AverageFunded int
}

func (c *Catalog) Stats() Stats {
	var s Stats
	if c == nil || len(c.props) == 0 {
		return s
	}
	funded := 0
	for _, p := range c.props {
		s.TotalListed += PriceMagnitude(p.Price)
		funded += p.FundedPercentage
	}
	s.Properties = len(c.props)
	s.AverageFunded = funded / len(c.props)
	return s
}
