package dashboard

import (
	"encoding/json"
	"time"

	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// Quiz statuses.
const (
	QuizDraft     = "Draft"
	QuizPublished = "Published"
	QuizArchived  = "Archived"
)

// Quiz difficulties.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

var (
	QuizStatuses     = []string{QuizDraft, QuizPublished, QuizArchived}
	QuizDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
)

// QuizQuestion is one question of a quiz.
type QuizQuestion struct {
	ID            string   `json:"id" yaml:"id"`
	Type          string   `json:"type" yaml:"type"`
	Text          string   `json:"text" yaml:"text"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer any      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Quiz is a row of the quiz list.
type Quiz struct {
	ID              string         `json:"id" yaml:"id"`
	Title           string         `json:"title" yaml:"title"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category        string         `json:"category" yaml:"category"`
	QuestionsCount  int            `json:"questionsCount" yaml:"questionsCount"`
	Questions       []QuizQuestion `json:"questions,omitempty" yaml:"questions,omitempty"`
	Difficulty      string         `json:"difficulty" yaml:"difficulty"`
	Status          string         `json:"status" yaml:"status"`
	CreatedDate     string         `json:"createdDate" yaml:"createdDate"`
	LastUpdatedDate string         `json:"lastUpdatedDate" yaml:"lastUpdatedDate"`
}

func (q Quiz) EntityID() string { return q.ID }

func (q Quiz) WithID(id string) Quiz {
	q.ID = id
	return q
}

func (q Quiz) Stamp(ev crud.Event, now time.Time) Quiz {
	if ev == crud.Created {
		q.CreatedDate = now.UTC().Format(DateLayout)
	}
	q.LastUpdatedDate = now.UTC().Format(DateLayout)
	return q
}

func (q Quiz) CurrentStatus() string { return q.Status }

func (q Quiz) WithStatus(status string) (Quiz, error) {
	if err := checkEnum(KindQuiz, "status", status, QuizStatuses); err != nil {
		return q, err
	}
	q.Status = status
	return q, nil
}

// QuestionTexts returns the text of every question.
func (q Quiz) QuestionTexts() []string {
	texts := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		texts[i] = question.Text
	}
	return texts
}

// AddQuiz is the add-quiz form. Questions are submitted as a JSON array.
type AddQuiz struct {
	Title         string `validate:"required,min=3,max=100"`
	Category      string `validate:"required"`
	Difficulty    string `validate:"required,oneof=Easy Medium Hard"`
	Description   string `validate:"max=500"`
	QuestionsJSON string `validate:"required"`
}

// Record implements crud.Payload. New quizzes start as drafts.
func (p AddQuiz) Record() (Quiz, error) {
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(p.QuestionsJSON), &questions); err != nil || questions == nil {
		return Quiz{}, crud.NewValidationError(KindQuiz, "QuestionsJSON", "must be a JSON array of questions")
	}
	if len(questions) == 0 {
		return Quiz{}, crud.NewValidationError(KindQuiz, "QuestionsJSON", "must contain at least one question")
	}

	return Quiz{
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		QuestionsCount: len(questions),
		Questions:      questions,
		Difficulty:     p.Difficulty,
		Status:         QuizDraft,
	}, nil
}

// QuizSchema searches titles and question texts.
func QuizSchema() *filter.Schema[Quiz] {
	return filter.NewSchema[Quiz]().
		Search("title", func(q Quiz) string { return q.Title }).
		SearchAll("questions", Quiz.QuestionTexts).
		Facet("status", func(q Quiz) string { return q.Status }).
		Facet("difficulty", func(q Quiz) string { return q.Difficulty }).
		Facet("category", func(q Quiz) string { return q.Category })
}
