package memdb

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
)

type QuestionRepository struct {
	db *DB
}

func NewQuestionRepository(db *DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// QueryLectureQuestions returns the lecture's full set in creation order,
// soft-deleted questions included; clients need them for duplicate exclusion.
func (repo *QuestionRepository) QueryLectureQuestions(lectureID string) ([]board.Question, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := make([]*questionRow, 0, len(repo.db.questions))
	for _, row := range repo.db.questions {
		if row.question.LectureID == lectureID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	questions := make([]board.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.question)
	}
	return questions, nil
}

// CheckTextUniqueness is the server-side duplicate check: normalized equality
// within one lecture, deleted questions excluded. It backs the 409 a racing
// client gets when it lost to another submitter.
func (repo *QuestionRepository) CheckTextUniqueness(lectureID, text string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	normalized := core.NormalizeText(text)
	for _, row := range repo.db.questions {
		q := &row.question
		if q.LectureID != lectureID || q.IsDeleted() {
			continue
		}
		if core.NormalizeText(q.Text) == normalized {
			return board.ErrDuplicateQuestion
		}
	}
	return nil
}

func (repo *QuestionRepository) CreateQuestion(q board.Question) (board.Question, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	q.ID = uuid.New().String()
	q.Status = board.StatusOpen
	q.CreatedAt = now
	q.UpdatedAt = now
	repo.db.questions[q.ID] = &questionRow{question: q, seq: repo.db.nextSeq()}
	return q, nil
}

func (repo *QuestionRepository) GetQuestionByID(id string) (board.Question, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if row, ok := repo.db.questions[id]; ok {
		return row.question, nil
	}
	return board.Question{}, board.ErrQuestionNotFound
}

// PatchQuestion applies the set fields only. Recording an answer moves the
// question to answered; the server owns that transition, clients never derive it.
func (repo *QuestionRepository) PatchQuestion(id string, patch board.QuestionPatch) (board.Question, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.questions[id]
	if !ok {
		return board.Question{}, board.ErrQuestionNotFound
	}
	if patch.Important != nil {
		row.question.Important = *patch.Important
	}
	if patch.Answer != nil {
		row.question.Answer.SetValid(*patch.Answer)
		if row.question.Status == board.StatusOpen {
			row.question.Status = board.StatusAnswered
		}
	}
	row.question.UpdatedAt = time.Now().UTC()
	return row.question, nil
}

func (repo *QuestionRepository) SoftDeleteQuestion(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.questions[id]
	if !ok {
		return board.ErrQuestionNotFound
	}
	row.question.Status = board.StatusDeleted
	row.question.UpdatedAt = time.Now().UTC()
	return nil
}
