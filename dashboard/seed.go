package dashboard

import (
	"bytes"
	_ "embed"
	"io"

	"github.com/friendsofgo/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Dataset holds the initial records of every list.
type Dataset struct {
	Quizzes      []Quiz            `yaml:"quizzes"`
	Coupons      []Coupon          `yaml:"coupons"`
	Orders       []Order           `yaml:"orders"`
	Admins       []AdminUser       `yaml:"admins"`
	Permissions  []Permission      `yaml:"permissions"`
	Reviews      []Review          `yaml:"reviews"`
	Customers    []Customer        `yaml:"customers"`
	Categories   []CourseCategory  `yaml:"categories"`
	Transactions []Transaction     `yaml:"transactions"`
	Products     []Product         `yaml:"products"`
	Leaderboard  []LeaderboardUser `yaml:"leaderboard"`
}

// DefaultDataset returns the built-in seed data.
func DefaultDataset() (*Dataset, error) {
	return LoadDataset(bytes.NewReader(seedYAML))
}

// LoadDataset decodes a YAML dataset. Unknown keys are rejected.
func LoadDataset(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return &ds, nil
		}
		return nil, errors.Wrap(err, "decode dataset")
	}
	return &ds, nil
}
