package dashboard

import (
	"time"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

var (
	TransactionStatuses = []string{"Paid", "Pending", "Failed"}
	TransactionTypes    = []string{"Purchase", "Refund", "Subscription"}
)

// Transaction is a payment record.
type Transaction struct {
	ID              string `json:"id" yaml:"id"`
	CustomerID      string `json:"customerId" yaml:"customerId"`
	OrderDate       string `json:"orderDate" yaml:"orderDate"`
	Status          string `json:"status" yaml:"status"`
	Amount          string `json:"amount" yaml:"amount"`
	ProductName     string `json:"productName" yaml:"productName"`
	PaymentMethod   string `json:"paymentMethod" yaml:"paymentMethod"`
	TransactionType string `json:"transactionType" yaml:"transactionType"`
}

func (t Transaction) EntityID() string { return t.ID }

func (t Transaction) WithID(id string) Transaction {
	t.ID = id
	return t
}

func (t Transaction) Stamp(crud.Event, time.Time) Transaction { return t }

func (t Transaction) CurrentStatus() string { return t.Status }

func (t Transaction) WithStatus(status string) (Transaction, error) {
	if err := checkEnum(KindTransaction, "status", status, TransactionStatuses); err != nil {
		return t, err
	}
	t.Status = status
	return t, nil
}

func TransactionSchema() *filter.Schema[Transaction] {
	return filter.NewSchema[Transaction]().
		Search("id", func(t Transaction) string { return t.ID }).
		Search("customerId", func(t Transaction) string { return t.CustomerID }).
		Search("productName", func(t Transaction) string { return t.ProductName }).
		Search("amount", func(t Transaction) string { return t.Amount }).
		Facet("status", func(t Transaction) string { return t.Status }).
		Facet("paymentMethod", func(t Transaction) string { return t.PaymentMethod }).
		Facet("transactionType", func(t Transaction) string { return t.TransactionType })
}
