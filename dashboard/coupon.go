package dashboard

import (
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Coupon statuses.
const (
	CouponActive   = "active"
	CouponInactive = "inactive"
	CouponExpired  = "expired"
)

var CouponStatuses = []string{CouponActive, CouponInactive, CouponExpired}

// Coupon is a discount code.
type Coupon struct {
	ID                   string       `json:"id" yaml:"id"`
	Code                 string       `json:"code" yaml:"code"`
	Description          string       `json:"description" yaml:"description"`
	DiscountType         string       `json:"discountType" yaml:"discountType"`
	DiscountValue        float64      `json:"discountValue" yaml:"discountValue"`
	StartDate            time.Time    `json:"startDate" yaml:"startDate"`
	ExpiryDate           time.Time    `json:"expiryDate" yaml:"expiryDate"`
	UsageLimit           int          `json:"usageLimit" yaml:"usageLimit"`
	UsedCount            int          `json:"usedCount" yaml:"usedCount"`
	MinPurchaseAmount    null.Float64 `json:"minPurchaseAmount" yaml:"minPurchaseAmount"`
	AssignmentType       string       `json:"assignmentType" yaml:"assignmentType"`
	AssignedToUser       null.String  `json:"assignedToUser" yaml:"assignedToUser"`
	AssignedToCategories []string     `json:"assignedToCategories,omitempty" yaml:"assignedToCategories,omitempty"`
	Status               string       `json:"status" yaml:"status"`
}

func (c Coupon) EntityID() string { return c.ID }

func (c Coupon) WithID(id string) Coupon {
	c.ID = id
	return c
}

func (c Coupon) Stamp(crud.Event, time.Time) Coupon { return c }

func (c Coupon) CurrentStatus() string { return c.Status }

func (c Coupon) WithStatus(status string) (Coupon, error) {
	if err := checkEnum(KindCoupon, "status", status, CouponStatuses); err != nil {
		return c, err
	}
	c.Status = status
	return c, nil
}

// AddCoupon is the create-coupon form.
type AddCoupon struct {
	Code                 string       `validate:"required,min=3,max=20"`
	Description          string       `validate:"required,min=5,max=100"`
	DiscountType         string       `validate:"required,oneof=percentage fixed"`
	DiscountValue        float64      `validate:"gt=0"`
	StartDate            time.Time    `validate:"required"`
	ExpiryDate           time.Time    `validate:"required,gtefield=StartDate"`
	UsageLimit           int          `validate:"gt=0"`
	MinPurchaseAmount    null.Float64 `validate:"-"`
	AssignmentType       string       `validate:"required,oneof=all_users specific_user all_categories specific_categories"`
	AssignedToUser       null.String  `validate:"-"`
	AssignedToCategories []string
	Active               bool
}

// Record implements crud.Payload. New coupons have not been used.
func (p AddCoupon) Record() (Coupon, error) {
	if p.MinPurchaseAmount.Valid && p.MinPurchaseAmount.Float64 < 0 {
		return Coupon{}, crud.NewValidationError(KindCoupon, "MinPurchaseAmount", "must not be negative")
	}
	if p.AssignmentType == "specific_user" && p.AssignedToUser.String == "" {
		return Coupon{}, crud.NewValidationError(KindCoupon, "AssignedToUser", "is required for specific_user coupons")
	}
	if p.AssignmentType == "specific_categories" && len(p.AssignedToCategories) == 0 {
		return Coupon{}, crud.NewValidationError(KindCoupon, "AssignedToCategories", "is required for specific_categories coupons")
	}

	status := CouponInactive
	if p.Active {
		status = CouponActive
	}
	return Coupon{
		Code:                 p.Code,
		Description:          p.Description,
		DiscountType:         p.DiscountType,
		DiscountValue:        p.DiscountValue,
		StartDate:            p.StartDate,
		ExpiryDate:           p.ExpiryDate,
		UsageLimit:           p.UsageLimit,
		MinPurchaseAmount:    p.MinPurchaseAmount,
		AssignmentType:       p.AssignmentType,
		AssignedToUser:       p.AssignedToUser,
		AssignedToCategories: append([]string(nil), p.AssignedToCategories...),
		Status:               status,
	}, nil
}

func CouponSchema() *filter.Schema[Coupon] {
	return filter.NewSchema[Coupon]().
		Search("code", func(c Coupon) string { return c.Code }).
		Search("description", func(c Coupon) string { return c.Description }).
		Facet("status", func(c Coupon) string { return c.Status }).
		Facet("discountType", func(c Coupon) string { return c.DiscountType })
}
