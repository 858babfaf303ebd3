package memdb

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/darasahq/ubao/core/board"
)

// CatalogRepository holds the class/lecture directory scoping the boards.
// The engine treats these as foreign keys; only the stand-in server mutates them.
type CatalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (repo *CatalogRepository) CreateClass(class board.Class) (board.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if class.ID == "" {
		class.ID = uuid.New().String()
	}
	class.Code = strings.ToUpper(class.Code)
	repo.db.classes[class.ID] = &class
	return class, nil
}

func (repo *CatalogRepository) CreateLecture(lecture board.Lecture) (board.Lecture, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.classes[lecture.ClassID]; !ok {
		return board.Lecture{}, board.ErrClassNotFound
	}
	if lecture.ID == "" {
		lecture.ID = uuid.New().String()
	}
	repo.db.lectures[lecture.ID] = &lecture
	return lecture, nil
}

func (repo *CatalogRepository) GetLectureByID(id string) (board.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lecture, ok := repo.db.lectures[id]; ok {
		return *lecture, nil
	}
	return board.Lecture{}, board.ErrLectureNotFound
}

func (repo *CatalogRepository) GetClassByCode(code string) (board.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	code = strings.ToUpper(code)
	for _, class := range repo.db.classes {
		if class.Code == code {
			return *class, nil
		}
	}
	return board.Class{}, board.ErrClassNotFound
}

func (repo *CatalogRepository) AddMember(classID, username string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.classes[classID]; !ok {
		return board.ErrClassNotFound
	}
	classes, ok := repo.db.members[username]
	if !ok {
		classes = make(map[string]bool)
		repo.db.members[username] = classes
	}
	classes[classID] = true
	return nil
}

func (repo *CatalogRepository) QueryMemberClasses(username string) ([]board.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]board.Class, 0, len(repo.db.members[username]))
	for classID := range repo.db.members[username] {
		if class, ok := repo.db.classes[classID]; ok {
			classes = append(classes, *class)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Subject < classes[j].Subject })
	return classes, nil
}

func (repo *CatalogRepository) QueryClassLectures(classID string) ([]board.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lectures := make([]board.Lecture, 0)
	for _, lecture := range repo.db.lectures {
		if lecture.ClassID == classID {
			lectures = append(lectures, *lecture)
		}
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].Title < lectures[j].Title })
	return lectures, nil
}
