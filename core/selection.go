package core

// Role namespaces client-side state: a user may act as a student in one
// session and as a TA in another, each remembering its own selection.
type Role string

const (
	RoleStudent Role = "student"
	RoleTA      Role = "ta"
)

// Selection is the last class/lecture a user had open, surviving restarts.
type Selection struct {
	ClassID   string `json:"class_id"`
	LectureID string `json:"lecture_id"`
}

// SelectionStore is any service that can persist the per-role Selection.
// It exclusively owns that state; callers read through it at startup and
// write through it on every user selection, never caching a second copy.
type SelectionStore interface {
	Load(role Role) (Selection, error)
	Save(role Role, sel Selection) error
}
