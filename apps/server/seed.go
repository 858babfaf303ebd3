package main

import (
	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/storage/memdb"
)

// seed loads a demo roster and catalog so a fresh stand-in is usable right
// away: log in as alice/student or bob/ta against the GO101 class.
func seed(catalog *memdb.CatalogRepository, accounts *memdb.AccountRepository) error {
	seedAccounts := []struct {
		username, name, password string
		isTeacher                bool
	}{
		{"alice", "Alice M", "student", false},
		{"bob", "Bob K", "ta", true},
	}
	for _, sa := range seedAccounts {
		acct := memdb.Account{Username: sa.username, Name: sa.name, IsTeacher: sa.isTeacher}
		if err := acct.SetPassword(sa.password); err != nil {
			return errors.Wrap(err, "setting seed password")
		}
		if _, err := accounts.CreateAccount(acct); err != nil {
			return errors.Wrap(err, "creating seed account")
		}
	}

	class, err := catalog.CreateClass(board.Class{Subject: "Intro to Go", Code: "GO101"})
	if err != nil {
		return errors.Wrap(err, "creating seed class")
	}
	lectures := []string{"Lecture 1: Hello, World", "Lecture 2: Concurrency"}
	for _, title := range lectures {
		if _, err := catalog.CreateLecture(board.Lecture{ClassID: class.ID, Title: title}); err != nil {
			return errors.Wrap(err, "creating seed lecture")
		}
	}
	for _, sa := range seedAccounts {
		if err := catalog.AddMember(class.ID, sa.username); err != nil {
			return errors.Wrap(err, "adding seed member")
		}
	}
	return nil
}
