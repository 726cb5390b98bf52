package inmemdb

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/student"
)

var nowFunc = time.Now // mockable

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) InsertStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	email := strings.ToLower(s.Email)
	for _, row := range repo.db.rows {
		if strings.ToLower(row.Email) == email {
			return student.Student{}, student.ErrEmailExists
		}
	}
	s.ID = uuid.New().String()
	if s.AddedAt.IsZero() {
		s.AddedAt = nowFunc().UTC()
	}
	repo.db.rows = append(repo.db.rows, s)
	return s, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, row := range repo.db.rows {
		if row.ID == id {
			repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
			return nil
		}
	}
	return student.ErrNotFound
}

// QueryStudents returns the newest students first, like the SQL store.
func (repo *studentRepository) QueryStudents(_ context.Context, filter student.QueryFilter) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.rows))
	for i := len(repo.db.rows) - 1; i >= 0; i-- {
		row := repo.db.rows[i]
		if filter.Search != "" && !core.ContainsFold(row.Name, filter.Search) && !core.ContainsFold(row.Email, filter.Search) {
			continue
		}
		students = append(students, row)
	}
	return students, nil
}
