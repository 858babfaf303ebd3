package main

import (
	"context"
	"fmt"
	"io"

	"github.com/darasahq/ubao/core/board"
)

// StudentBoard is the student's view of a lecture board: read everything,
// submit new questions (behind the duplicate guard).
type StudentBoard struct {
	Controller *board.Controller
}

func (b StudentBoard) Render(w io.Writer) {
	renderQuestions(w, b.Controller)
}

func (b StudentBoard) Ask(ctx context.Context, text string) error {
	return b.Controller.SubmitQuestion(ctx, text)
}

// TABoard is the TA's view: read everything, flag importance and reply.
type TABoard struct {
	Controller *board.Controller
}

func (b TABoard) Render(w io.Writer) {
	renderQuestions(w, b.Controller)
}

// ToggleImportant flips the flag from its currently displayed value.
func (b TABoard) ToggleImportant(ctx context.Context, q board.Question) error {
	return b.Controller.SetImportant(ctx, q.ID, !q.Important)
}

func (b TABoard) Reply(ctx context.Context, q board.Question, text string) error {
	return b.Controller.Reply(ctx, q.ID, text)
}

func renderQuestions(w io.Writer, ctrl *board.Controller) {
	questions := ctrl.Questions()
	fmt.Fprintf(w, "-- board (%s) --\n", ctrl.State())
	if len(questions) == 0 {
		fmt.Fprintln(w, "(no questions yet)")
		return
	}
	for i, q := range questions {
		fmt.Fprintf(w, "%2d. [%s] %s: %s\n", i+1, badge(&q), q.AuthorName(), q.Text)
		if q.Answer.Valid {
			fmt.Fprintf(w, "      reply: %s\n", q.Answer.String)
		}
	}
}

func badge(q *board.Question) string {
	switch {
	case q.IsDeleted():
		return "deleted"
	case q.Important:
		return "important"
	case q.Status == board.StatusAnswered:
		return "answered"
	default:
		return "open"
	}
}
