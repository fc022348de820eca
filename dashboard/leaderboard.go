package dashboard

import (
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// LeaderboardUser is a ranked player. User names are unique and serve as ids.
type LeaderboardUser struct {
	Rank            int         `json:"rank" yaml:"rank"`
	UserName        string      `json:"userName" yaml:"userName"`
	Points          int         `json:"points" yaml:"points"`
	AvatarURL       null.String `json:"avatarUrl" yaml:"avatarUrl"`
	QuizCompletions int         `json:"quizCompletions" yaml:"quizCompletions"`
	AvgScore        int         `json:"avgScore" yaml:"avgScore"`
	MemberSince     string      `json:"memberSince" yaml:"memberSince"`
}

func (u LeaderboardUser) EntityID() string { return u.UserName }

func (u LeaderboardUser) WithID(id string) LeaderboardUser {
	u.UserName = id
	return u
}

func (u LeaderboardUser) Stamp(crud.Event, time.Time) LeaderboardUser { return u }

func LeaderboardSchema() *filter.Schema[LeaderboardUser] {
	return filter.NewSchema[LeaderboardUser]().
		Search("userName", func(u LeaderboardUser) string { return u.UserName })
}
