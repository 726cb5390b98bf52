package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teacherpoli/backoffice/core/student"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(Open())

	ana, err := repo.InsertStudent(ctx, student.Student{Name: "Ana Souza", Email: "ana@x.com", Status: student.StatusActive})
	require.NoError(t, err)
	assert.NotEmpty(t, ana.ID)
	assert.False(t, ana.AddedAt.IsZero())

	bruno, err := repo.InsertStudent(ctx, student.Student{Name: "Bruno", Email: "bruno@y.com", Status: student.StatusActive})
	require.NoError(t, err)

	_, err = repo.InsertStudent(ctx, student.Student{Name: "Other Ana", Email: "ANA@x.com"})
	assert.Equal(t, student.ErrEmailExists, err)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "all, newest first", want: []string{bruno.ID, ana.ID}},
		{name: "by name ignoring case", search: "SOUZA", want: []string{ana.ID}},
		{name: "by email", search: "@y.", want: []string{bruno.ID}},
		{name: "no match", search: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryStudents(ctx, student.QueryFilter{Search: tt.search})
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	require.NoError(t, repo.DeleteStudent(ctx, ana.ID))
	assert.Equal(t, student.ErrNotFound, repo.DeleteStudent(ctx, ana.ID))

	got, err := repo.QueryStudents(ctx, student.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bruno, got[0])
}
