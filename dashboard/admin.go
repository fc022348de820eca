package dashboard

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Admin statuses.
const (
	AdminActive    = "Active"
	AdminSuspended = "Suspended"
)

var AdminStatuses = []string{AdminActive, AdminSuspended}

// AdminUser is a dashboard operator.
type AdminUser struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Email     string      `json:"email" yaml:"email"`
	AvatarURL null.String `json:"avatarUrl" yaml:"avatarUrl"`
	Role      string      `json:"role" yaml:"role"`
	LastLogin string      `json:"lastLogin" yaml:"lastLogin"`
	Status    string      `json:"status" yaml:"status"`
}

func (a AdminUser) EntityID() string { return a.ID }

func (a AdminUser) WithID(id string) AdminUser {
	a.ID = id
	return a
}

// Stamp sets LastLogin on creation and on every status change.
func (a AdminUser) Stamp(ev crud.Event, now time.Time) AdminUser {
	if ev == crud.Created || ev == crud.StatusChanged {
		a.LastLogin = now.Format(LoginLayout)
	}
	return a
}

func (a AdminUser) CurrentStatus() string { return a.Status }

func (a AdminUser) WithStatus(status string) (AdminUser, error) {
	if err := checkEnum(KindAdmin, "status", status, AdminStatuses); err != nil {
		return a, err
	}
	a.Status = status
	return a, nil
}

// ToggledStatus returns the status the suspend/activate action moves to.
func (a AdminUser) ToggledStatus() string {
	if a.Status == AdminActive {
		return AdminSuspended
	}
	return AdminActive
}

// AddAdmin is the add-admin form.
type AddAdmin struct {
	Name   string `validate:"required,min=2,max=100"`
	Email  string `validate:"required,email"`
	Role   string `validate:"required"`
	Status string `validate:"required,oneof=Active Suspended"`
}

// Record implements crud.Payload.
func (p AddAdmin) Record() (AdminUser, error) {
	if err := checkEnum(KindAdmin, "Role", p.Role, AdminRoles); err != nil {
		return AdminUser{}, err
	}
	return AdminUser{
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: null.StringFrom("https://placehold.co/40x40.png?text=" + initial(p.Name)),
		Role:      p.Role,
		Status:    p.Status,
	}, nil
}

// initial returns the upper-cased first character of name.
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

func AdminSchema() *filter.Schema[AdminUser] {
	return filter.NewSchema[AdminUser]().
		Search("name", func(a AdminUser) string { return a.Name }).
		Search("email", func(a AdminUser) string { return a.Email }).
		Search("role", func(a AdminUser) string { return a.Role }).
		Facet("status", func(a AdminUser) string { return a.Status }).
		Facet("role", func(a AdminUser) string { return a.Role })
}

// Permission grants a feature to a set of admin roles.
type Permission struct {
	ID           string   `json:"id" yaml:"id"`
	FeatureName  string   `json:"featureName" yaml:"featureName"`
	Description  string   `json:"description" yaml:"description"`
	RolesAllowed []string `json:"rolesAllowed" yaml:"rolesAllowed"`
	LastModified string   `json:"lastModified" yaml:"lastModified"`
}

func (p Permission) EntityID() string { return p.ID }

func (p Permission) WithID(id string) Permission {
	p.ID = id
	return p
}

func (p Permission) Stamp(_ crud.Event, now time.Time) Permission {
	p.LastModified = now.UTC().Format(DateLayout)
	return p
}

// AddPermission is the add-permission form.
type AddPermission struct {
	FeatureName  string `validate:"required,max=100"`
	Description  string `validate:"required,max=200"`
	RolesAllowed []string
}

// Record implements crud.Payload.
func (p AddPermission) Record() (Permission, error) {
	for _, role := range p.RolesAllowed {
		if err := checkEnum(KindPermission, "RolesAllowed", role, AdminRoles); err != nil {
			return Permission{}, err
		}
	}
	return Permission{
		FeatureName:  p.FeatureName,
		Description:  p.Description,
		RolesAllowed: append([]string{}, p.RolesAllowed...),
	}, nil
}

// PermissionSchema facets on roles; a permission matches a selected role when
// that role is among the roles it allows.
func PermissionSchema() *filter.Schema[Permission] {
	return filter.NewSchema[Permission]().
		Search("featureName", func(p Permission) string { return p.FeatureName }).
		Search("description", func(p Permission) string { return p.Description }).
		FacetSet("rolesAllowed", func(p Permission) []string { return p.RolesAllowed })
}
