package dashboard

import (
	"time"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

const (
	DefaultCategoryImageURL  = "https://placehold.co/300x200.png"
	DefaultCategoryImageHint = "course category"
)

// CourseCategory groups quizzes for the storefront.
type CourseCategory struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	QuizCount   int    `json:"quizCount" yaml:"quizCount"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	ImageHint   string `json:"imageHint" yaml:"imageHint"`
	LastUpdated string `json:"lastUpdated" yaml:"lastUpdated"`
}

func (c CourseCategory) EntityID() string { return c.ID }

func (c CourseCategory) WithID(id string) CourseCategory {
	c.ID = id
	return c
}

func (c CourseCategory) Stamp(_ crud.Event, now time.Time) CourseCategory {
	c.LastUpdated = now.UTC().Format(DateLayout)
	return c
}

// CategoryForm is the add/edit category dialog.
type CategoryForm struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=300"`
	QuizCount   int    `validate:"gte=0"`
	ImageURL    string `validate:"omitempty,url"`
	ImageHint   string `validate:"max=50"`
}

// Record implements crud.Payload.
func (f CategoryForm) Record() (CourseCategory, error) {
	return f.Apply(CourseCategory{}), nil
}

// Apply implements crud.Patch. Empty image fields fall back to defaults.
func (f CategoryForm) Apply(c CourseCategory) CourseCategory {
	c.Name = f.Name
	c.Description = f.Description
	c.QuizCount = f.QuizCount
	c.ImageURL = f.ImageURL
	if c.ImageURL == "" {
		c.ImageURL = DefaultCategoryImageURL
	}
	c.ImageHint = f.ImageHint
	if c.ImageHint == "" {
		c.ImageHint = DefaultCategoryImageHint
	}
	return c
}

func CategorySchema() *filter.Schema[CourseCategory] {
	return filter.NewSchema[CourseCategory]().
		Search("name", func(c CourseCategory) string { return c.Name }).
		Search("description", func(c CourseCategory) string { return c.Description })
}
