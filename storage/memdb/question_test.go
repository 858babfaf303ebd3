package memdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darasahq/ubao/core/board"
)

func TestQuestionCreationOrder(t *testing.T) {
	repo := NewQuestionRepository(New())

	for _, text := range []string{"first", "second", "third"} {
		if _, err := repo.CreateQuestion(board.Question{LectureID: "lec1", Text: text}); err != nil {
			t.Fatalf("CreateQuestion(%q) = %v; want nil", text, err)
		}
	}
	if _, err := repo.CreateQuestion(board.Question{LectureID: "lec2", Text: "elsewhere"}); err != nil {
		t.Fatal(err)
	}

	questions, err := repo.QueryLectureQuestions("lec1")
	if err != nil {
		t.Fatalf("QueryLectureQuestions() = %v; want nil", err)
	}
	if assert.Len(t, questions, 3) {
		assert.Equal(t, "first", questions[0].Text)
		assert.Equal(t, "second", questions[1].Text)
		assert.Equal(t, "third", questions[2].Text)
	}
}

func TestCheckTextUniqueness(t *testing.T) {
	repo := NewQuestionRepository(New())
	q, err := repo.CreateQuestion(board.Question{LectureID: "lec1", Text: "What is X?"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		lectureID string
		text      string
		wantErr   error
	}{
		{name: "exact", lectureID: "lec1", text: "What is X?", wantErr: board.ErrDuplicateQuestion},
		{name: "normalized variant", lectureID: "lec1", text: "  what IS   x? ", wantErr: board.ErrDuplicateQuestion},
		{name: "other lecture", lectureID: "lec2", text: "What is X?"},
		{name: "new text", lectureID: "lec1", text: "What is Y?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.CheckTextUniqueness(tt.lectureID, tt.text); err != tt.wantErr {
				t.Errorf("CheckTextUniqueness() = %v; want %v", err, tt.wantErr)
			}
		})
	}

	// soft-deleted questions free their text up again
	if err := repo.SoftDeleteQuestion(q.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.CheckTextUniqueness("lec1", "What is X?"); err != nil {
		t.Errorf("CheckTextUniqueness() after delete = %v; want nil", err)
	}
}

func TestPatchQuestion(t *testing.T) {
	repo := NewQuestionRepository(New())
	q, err := repo.CreateQuestion(board.Question{LectureID: "lec1", Text: "What is X?"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, board.StatusOpen, q.Status)

	important := true
	got, err := repo.PatchQuestion(q.ID, board.QuestionPatch{Important: &important})
	if err != nil {
		t.Fatalf("PatchQuestion() = %v; want nil", err)
	}
	assert.True(t, got.Important)
	assert.Equal(t, board.StatusOpen, got.Status) // importance alone is no answer

	answer := "42"
	got, err = repo.PatchQuestion(q.ID, board.QuestionPatch{Answer: &answer})
	if err != nil {
		t.Fatalf("PatchQuestion() = %v; want nil", err)
	}
	assert.Equal(t, board.StatusAnswered, got.Status)
	assert.Equal(t, "42", got.Answer.String)
	assert.True(t, got.Important) // untouched fields survive
}

func TestPatchQuestionNotFound(t *testing.T) {
	repo := NewQuestionRepository(New())
	important := true
	if _, err := repo.PatchQuestion("nope", board.QuestionPatch{Important: &important}); err != board.ErrQuestionNotFound {
		t.Errorf("PatchQuestion() = %v; want %v", err, board.ErrQuestionNotFound)
	}
}

func TestSoftDeleteQuestion(t *testing.T) {
	repo := NewQuestionRepository(New())
	q, err := repo.CreateQuestion(board.Question{LectureID: "lec1", Text: "What is X?"})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.SoftDeleteQuestion(q.ID); err != nil {
		t.Fatalf("SoftDeleteQuestion() = %v; want nil", err)
	}

	// still visible in the lecture's set, marked deleted
	questions, err := repo.QueryLectureQuestions("lec1")
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, questions, 1) {
		assert.Equal(t, board.StatusDeleted, questions[0].Status)
		assert.True(t, questions[0].IsDeleted())
	}
}

func TestCatalogMembership(t *testing.T) {
	db := New()
	repo := NewCatalogRepository(db)

	class, err := repo.CreateClass(board.Class{Subject: "Intro to Go", Code: "go101"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "GO101", class.Code)

	if err := repo.AddMember(class.ID, "alice"); err != nil {
		t.Fatalf("AddMember() = %v; want nil", err)
	}
	classes, err := repo.QueryMemberClasses("alice")
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, classes, 1) {
		assert.Equal(t, class.ID, classes[0].ID)
	}

	classes, err = repo.QueryMemberClasses("nobody")
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, classes)
}

func TestCatalogLectures(t *testing.T) {
	repo := NewCatalogRepository(New())

	class, err := repo.CreateClass(board.Class{Subject: "Intro to Go", Code: "GO101"})
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"Week 2: Slices", "Week 1: Basics"} {
		if _, err := repo.CreateLecture(board.Lecture{ClassID: class.ID, Title: title}); err != nil {
			t.Fatalf("CreateLecture(%q) = %v; want nil", title, err)
		}
	}

	lectures, err := repo.QueryClassLectures(class.ID)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, lectures, 2) {
		assert.Equal(t, "Week 1: Basics", lectures[0].Title)
	}

	if _, err := repo.CreateLecture(board.Lecture{ClassID: "nope", Title: "orphan"}); err != board.ErrClassNotFound {
		t.Errorf("CreateLecture(bad class) = %v; want %v", err, board.ErrClassNotFound)
	}
}

func TestGetClassByCode(t *testing.T) {
	repo := NewCatalogRepository(New())
	class, err := repo.CreateClass(board.Class{Subject: "Intro to Go", Code: "GO101"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetClassByCode("go101")
	if err != nil {
		t.Fatalf("GetClassByCode() = %v; want nil", err)
	}
	assert.Equal(t, class.ID, got.ID)

	if _, err := repo.GetClassByCode("NOPE"); err != board.ErrClassNotFound {
		t.Errorf("GetClassByCode(unknown) = %v; want %v", err, board.ErrClassNotFound)
	}
}
