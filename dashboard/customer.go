package dashboard

import (
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

var CustomerStatuses = []string{"Active", "Inactive", "VIP"}

// OrderOverview summarises a customer's purchases.
type OrderOverview struct {
	TotalPurchaseCount int `json:"totalPurchaseCount" yaml:"totalPurchaseCount"`
	CompletedCount     int `json:"completedCount" yaml:"completedCount"`
	IncompleteCount    int `json:"incompleteCount" yaml:"incompleteCount"`
}

// Customer is a row of the all-users list.
type Customer struct {
	ID               string        `json:"id" yaml:"id"`
	UserID           string        `json:"userId" yaml:"userId"`
	Name             string        `json:"name" yaml:"name"`
	Email            string        `json:"email" yaml:"email"`
	Phone            string        `json:"phone" yaml:"phone"`
	Address          string        `json:"address" yaml:"address"`
	AvatarURL        null.String   `json:"avatarUrl" yaml:"avatarUrl"`
	TotalPurchase    string        `json:"totalPurchase" yaml:"totalPurchase"`
	Status           string        `json:"status" yaml:"status"`
	RegistrationDate string        `json:"registrationDate" yaml:"registrationDate"`
	LastPurchaseDate string        `json:"lastPurchaseDate" yaml:"lastPurchaseDate"`
	OrderOverview    OrderOverview `json:"orderOverview" yaml:"orderOverview"`
}

func (c Customer) EntityID() string { return c.ID }

func (c Customer) WithID(id string) Customer {
	c.ID = id
	return c
}

func (c Customer) Stamp(crud.Event, time.Time) Customer { return c }

func (c Customer) CurrentStatus() string { return c.Status }

func (c Customer) WithStatus(status string) (Customer, error) {
	if err := checkEnum(KindCustomer, "status", status, CustomerStatuses); err != nil {
		return c, err
	}
	c.Status = status
	return c, nil
}

func CustomerSchema() *filter.Schema[Customer] {
	return filter.NewSchema[Customer]().
		Search("name", func(c Customer) string { return c.Name }).
		Search("email", func(c Customer) string { return c.Email }).
		Search("userId", func(c Customer) string { return c.UserID }).
		Facet("status", func(c Customer) string { return c.Status })
}
