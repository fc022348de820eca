package dashboard

import (
	"time"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Order statuses.
const (
	OrderComplete = "Complete"
	OrderPending  = "Pending"
	OrderCanceled = "Canceled"
)

var (
	OrderStatuses  = []string{OrderComplete, OrderPending, OrderCanceled}
	PaymentMethods = []string{"UPI", "Debit Card", "Credit Card", "Net Banking"}
)

// Order is a row of order management.
type Order struct {
	ID            string `json:"id" yaml:"id"`
	OrderID       string `json:"orderId" yaml:"orderId"`
	UserID        string `json:"userId" yaml:"userId"`
	ProductName   string `json:"productName" yaml:"productName"`
	Date          string `json:"date" yaml:"date"`
	Price         string `json:"price" yaml:"price"`
	PaymentMethod string `json:"paymentMethod" yaml:"paymentMethod"`
	Status        string `json:"status" yaml:"status"`
}

func (o Order) EntityID() string { return o.ID }

func (o Order) WithID(id string) Order {
	o.ID = id
	return o
}

func (o Order) Stamp(crud.Event, time.Time) Order { return o }

func (o Order) CurrentStatus() string { return o.Status }

func (o Order) WithStatus(status string) (Order, error) {
	if err := checkEnum(KindOrder, "status", status, OrderStatuses); err != nil {
		return o, err
	}
	o.Status = status
	return o, nil
}

// OrderSchema backs the order tabs ("all", Complete, Pending, Canceled).
func OrderSchema() *filter.Schema[Order] {
	return filter.NewSchema[Order]().
		Search("orderId", func(o Order) string { return o.OrderID }).
		Search("userId", func(o Order) string { return o.UserID }).
		Search("productName", func(o Order) string { return o.ProductName }).
		Facet("status", func(o Order) string { return o.Status }).
		Facet("paymentMethod", func(o Order) string { return o.PaymentMethod })
}
