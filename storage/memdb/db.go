// Package memdb backs the development stand-in for the board service with
// plain in-process tables. Deterministic and dependency-free on purpose: it
// exists to be seeded and thrown away by tests and local runs.
package memdb

import (
	"sync"

	"github.com/darasahq/ubao/core/board"
)

type (
	questionRow struct {
		question board.Question
		seq      int
	}

	DB struct {
		mutex     sync.RWMutex
		seq       int
		questions map[string]*questionRow
		classes   map[string]*board.Class
		lectures  map[string]*board.Lecture
		members   map[string]map[string]bool // username -> set of class ids
		accounts  map[string]*Account
	}
)

func New() *DB {
	return &DB{
		questions: make(map[string]*questionRow),
		classes:   make(map[string]*board.Class),
		lectures:  make(map[string]*board.Lecture),
		members:   make(map[string]map[string]bool),
		accounts:  make(map[string]*Account),
	}
}

func (db *DB) nextSeq() int {
	db.seq++
	return db.seq
}
