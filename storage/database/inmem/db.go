package inmemdb

import (
	"sync"

	"github.com/teacherpoli/backoffice/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	// studentTable keeps rows in insertion order.
	studentTable struct {
		sync.RWMutex
		rows []student.Student
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{rows: make([]student.Student, 0)},
	}
}
