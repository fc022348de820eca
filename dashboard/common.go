package dashboard

import (
	"strings"

	"github.com/aarondl/strmangle"

	"github.com/nrfta/listing-go/crud"
)

// Entity kinds. They name lists in the registry, logs and metrics.
const (
	KindQuiz        = "quiz"
	KindCoupon      = "coupon"
	KindOrder       = "order"
	KindAdmin       = "admin"
	KindPermission  = "permission"
	KindReview      = "review"
	KindCustomer    = "customer"
	KindCategory    = "category"
	KindTransaction = "transaction"
	KindProduct     = "product"
	KindLeaderboard = "leaderboard"
)

const (
	// DateLayout is used for day-resolution fields such as lastUpdated.
	DateLayout = "2006-01-02"

	// LoginLayout is used for admin last-login times.
	LoginLayout = "2006-01-02 03:04 PM"
)

// AdminRoles is the closed set of admin roles.
var AdminRoles = []string{"Super Admin", "Content Manager", "User Manager", "Support Staff"}

func checkEnum(kind, field, value string, allowed []string) error {
	if strmangle.SetInclude(value, allowed) {
		return nil
	}
	return crud.NewValidationError(kind, field, "must be one of ["+strings.Join(allowed, ", ")+"]")
}
