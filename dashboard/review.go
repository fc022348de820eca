package dashboard

import (
	"strconv"
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Review statuses.
const (
	ReviewPending  = "Pending"
	ReviewApproved = "Approved"
	ReviewRejected = "Rejected"
)

var ReviewStatuses = []string{ReviewPending, ReviewApproved, ReviewRejected}

// reviewDateLayout matches the millisecond ISO timestamps reviews carry once moderated.
const reviewDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Review is a product review awaiting or past moderation.
type Review struct {
	ID            string      `json:"id" yaml:"id"`
	ProductID     string      `json:"productId" yaml:"productId"`
	ProductName   string      `json:"productName" yaml:"productName"`
	UserName      string      `json:"userName" yaml:"userName"`
	UserAvatarURL null.String `json:"userAvatarUrl" yaml:"userAvatarUrl"`
	Rating        int         `json:"rating" yaml:"rating"`
	Comment       string      `json:"comment" yaml:"comment"`
	Date          string      `json:"date" yaml:"date"`
	Status        string      `json:"status" yaml:"status"`
}

func (r Review) EntityID() string { return r.ID }

func (r Review) WithID(id string) Review {
	r.ID = id
	return r
}

func (r Review) Stamp(ev crud.Event, now time.Time) Review {
	if ev == crud.StatusChanged {
		r.Date = now.UTC().Format(reviewDateLayout)
	}
	return r
}

func (r Review) CurrentStatus() string { return r.Status }

func (r Review) WithStatus(status string) (Review, error) {
	if err := checkEnum(KindReview, "status", status, ReviewStatuses); err != nil {
		return r, err
	}
	r.Status = status
	return r, nil
}

// ReviewSchema facets on status and on the star rating ("1" to "5").
func ReviewSchema() *filter.Schema[Review] {
	return filter.NewSchema[Review]().
		Search("productName", func(r Review) string { return r.ProductName }).
		Search("userName", func(r Review) string { return r.UserName }).
		Search("comment", func(r Review) string { return r.Comment }).
		Facet("status", func(r Review) string { return r.Status }).
		Facet("rating", func(r Review) string { return strconv.Itoa(r.Rating) })
}
