package testutil

import (
	"testing"

	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/storage/memdb"
)

func CreateAccount(t *testing.T, repo *memdb.AccountRepository, username, name, pwd string, isTeacher bool) memdb.Account {
	acct := memdb.Account{
		Username:  username,
		Name:      name,
		IsTeacher: isTeacher,
	}
	if pwd != "" {
		if err := acct.SetPassword(pwd); err != nil {
			t.Fatalf("CreateAccount() failed: %v", err)
		}
	}
	acct, err := repo.CreateAccount(acct)
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}

func CreateClass(t *testing.T, repo *memdb.CatalogRepository, subject, code string, members ...string) board.Class {
	class, err := repo.CreateClass(board.Class{Subject: subject, Code: code})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	for _, username := range members {
		if err := repo.AddMember(class.ID, username); err != nil {
			t.Fatalf("CreateClass() failed: %v", err)
		}
	}
	return class
}

func CreateLecture(t *testing.T, repo *memdb.CatalogRepository, classID, title string) board.Lecture {
	lecture, err := repo.CreateLecture(board.Lecture{ClassID: classID, Title: title})
	if err != nil {
		t.Fatalf("CreateLecture() failed: %v", err)
	}
	return lecture
}

func CreateQuestion(t *testing.T, repo *memdb.QuestionRepository, lectureID, text string) board.Question {
	q, err := repo.CreateQuestion(board.Question{LectureID: lectureID, Text: text})
	if err != nil {
		t.Fatalf("CreateQuestion() failed: %v", err)
	}
	return q
}
