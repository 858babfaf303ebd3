package board

import (
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasahq/ubao/core"
)

var (
	// errors shared with the board service
	ErrQuestionNotFound  = errors.New("question not found")
	ErrLectureNotFound   = errors.New("lecture not found")
	ErrClassNotFound     = errors.New("class not found")
	ErrDuplicateQuestion = errors.New("a question with this text already exists for this lecture")
)

// Question statuses. Transitions are server-owned: open -> answered when a
// reply is recorded, and either -> deleted as a soft delete. A client never
// constructs the deleted status, it only observes it.
const (
	StatusOpen     = "open"
	StatusAnswered = "answered"
	StatusDeleted  = "deleted"
)

type Question struct {
	ID        string      `json:"id"`
	LectureID string      `json:"lecture_id"`
	Text      string      `json:"text"`
	Author    null.String `json:"author"`
	Status    string      `json:"status"`
	Important bool        `json:"important"`
	Answer    null.String `json:"answer"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

func (q *Question) IsDeleted() bool {
	return q.Status == StatusDeleted
}

// AuthorName returns the display name, falling back for anonymous questions.
func (q *Question) AuthorName() string {
	if q.Author.Valid && q.Author.String != "" {
		return q.Author.String
	}
	return "Anon"
}

type Class struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Code    string `json:"code"`
}

type Lecture struct {
	ID      string `json:"id"`
	ClassID string `json:"class_id"`
	Title   string `json:"title"`
}

// NewQuestion contains information needed to post a new Question.
type NewQuestion struct {
	Text string `json:"text" validate:"required"`
}

// Validate rejects submissions that are empty once normalized; the raw text
// itself is kept verbatim for posting and display.
func (nq *NewQuestion) Validate() error {
	if core.NormalizeText(nq.Text) == "" {
		nq.Text = ""
	}
	return core.Validate.Struct(nq)
}

// QuestionPatch defines what a TA may change on an existing Question.
// Only non-nil fields are sent; the server never sees the others.
type QuestionPatch struct {
	Important *bool   `json:"important,omitempty"`
	Answer    *string `json:"answer,omitempty"`
}

func (qp *QuestionPatch) IsEmpty() bool {
	return qp.Important == nil && qp.Answer == nil
}

func (qp *QuestionPatch) Validate() error {
	if qp.IsEmpty() {
		return core.NewValidationError(errNothingToPatch)
	}
	return nil
}

// JoinClass contains the code submitted to join a class.
type JoinClass struct {
	Code string `json:"code" validate:"required,joincode"`
}

func (jc *JoinClass) Validate() error {
	// codes are case-insensitive; normalized to upper
	jc.Code = strings.ToUpper(core.CleanString(jc.Code))
	return core.Validate.Struct(jc)
}
