package dashboard

import (
	"time"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Product is a row of the category product list.
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	CreatedDate string `json:"createdDate" yaml:"createdDate"`
	Category    string `json:"category" yaml:"category"`
}

func (p Product) EntityID() string { return p.ID }

func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

func (p Product) Stamp(crud.Event, time.Time) Product { return p }

func ProductSchema() *filter.Schema[Product] {
	return filter.NewSchema[Product]().
		Search("name", func(p Product) string { return p.Name }).
		Facet("category", func(p Product) string { return p.Category })
}
