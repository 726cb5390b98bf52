package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core/student"
)

const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) InsertStudent(ctx context.Context, s student.Student) (student.Student, error) {
	s.ID = uuid.New().String()
	if s.AddedAt.IsZero() {
		s.AddedAt = time.Now()
	}
	s.AddedAt = s.AddedAt.UTC()

	const q = `
		INSERT INTO manual_students (id, name, email, notes, status, added_at, added_by)
		VALUES (:id, :name, :email, :notes, :status, :added_at, :added_by)`
	if _, err := repo.db.NamedExecContext(ctx, q, s); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return student.Student{}, student.ErrEmailExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return student.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM manual_students WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n == 0 {
		return student.ErrNotFound
	}
	return nil
}

// QueryStudents returns the newest students first.
func (repo studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	q := `SELECT id, name, email, notes, status, added_at, added_by FROM manual_students`
	var args []interface{}
	if filter.Search != "" {
		// students with Name or Email matching the search keyword
		q += ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
	}
	q += ` ORDER BY added_at DESC`

	students := make([]student.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	for i := range students {
		students[i].AddedAt = students[i].AddedAt.UTC()
	}
	return students, nil
}
