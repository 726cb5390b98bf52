package echoapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
	inmemdb "github.com/teacherpoli/backoffice/storage/database/inmem"
	"github.com/teacherpoli/backoffice/storage/snapshot"
)

const (
	testSecret = "test-secret"
	adminEmail = "admin@teacherpoli.com"
)

type testApp struct {
	srv   Server
	store *snapshot.MemoryStore
	token string
}

type unreachableRepo struct{}

func (unreachableRepo) InsertStudent(context.Context, student.Student) (student.Student, error) {
	return student.Student{}, errors.New("dial tcp: connection refused")
}
func (unreachableRepo) DeleteStudent(context.Context, string) error {
	return errors.New("dial tcp: connection refused")
}
func (unreachableRepo) QueryStudents(context.Context, student.QueryFilter) ([]student.Student, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func newTestApp(t *testing.T, repo ...student.Repository) *testApp {
	t.Helper()
	validate, translator := core.NewValidator()

	store := snapshot.NewMemoryStore()
	catalog := bonus.NewService(store, validate, translator, core.NopLogger)

	var studentRepo student.Repository = inmemdb.NewStudentRepository(inmemdb.Open())
	if len(repo) > 0 {
		studentRepo = repo[0]
	}
	dir := student.NewDirectory(studentRepo, validate, translator, core.NopLogger)

	srv := NewServer(&Options{
		AppName:        "TeacherPoli",
		SecretKey:      testSecret,
		TestMode:       true,
		DisableReqLogs: true,
		Admins:         core.NewAdminList(adminEmail),
		Catalog:        catalog,
		Directory:      dir,
	})
	return &testApp{srv: srv, store: store, token: tokenFor(t, adminEmail)}
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := GenerateToken(testSecret, NewAdminClaims(email, "TeacherPoli", time.Hour))
	require.NoError(t, err)
	return token
}

func (app *testApp) do(t *testing.T, method, path, body string, token ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	tok := app.token
	if len(token) > 0 {
		tok = token[0]
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	app.srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestAuth(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "no token", token: "", wantCode: http.StatusUnauthorized},
		{name: "garbage token", token: "not.a.jwt", wantCode: http.StatusUnauthorized},
		{name: "not an admin", token: tokenFor(t, "student@x.com"), wantCode: http.StatusForbidden},
		{name: "admin, any case", token: tokenFor(t, "ADMIN@teacherpoli.com"), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, "/v1/bonuses", "", tt.token)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestBonusAPI(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/v1/bonuses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog []bonus.Resource
	decode(t, rec, &catalog)
	assert.Len(t, catalog, len(bonus.DefaultCatalog()))

	rec = app.do(t, http.MethodPost, "/v1/bonuses", `{"title":"Curso A","type":"course"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res bonus.Resource
	decode(t, rec, &res)
	assert.Equal(t, "Curso A", res.Title)
	assert.Equal(t, 4.5, res.Rating)
	bonusPath := "/v1/bonuses/" + res.ID

	rec = app.do(t, http.MethodPost, bonusPath+"/lessons", `{"title":"Aula 1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lesson bonus.Lesson
	decode(t, rec, &lesson)
	lessonPath := bonusPath + "/lessons/" + lesson.ID

	rec = app.do(t, http.MethodPost, lessonPath+"/exercises", `{"question":"q","options":["a","b","c","d"],"correctAnswer":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ex bonus.Exercise
	decode(t, rec, &ex)
	assert.Equal(t, 2, ex.CorrectAnswer)

	rec = app.do(t, http.MethodPost, lessonPath+"/exercises", `{"question":"q","options":["a","b","c"],"correctAnswer":2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	decode(t, rec, &fields)
	assert.Contains(t, fields, "options")

	rec = app.do(t, http.MethodPut, lessonPath, `{"title":"Aula 1 (revisada)","completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &lesson)
	assert.True(t, lesson.Completed)
	assert.Len(t, lesson.Exercises, 1)

	rec = app.do(t, http.MethodPut, bonusPath, `{"downloads":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &res)
	assert.Equal(t, 3, res.Downloads)
	assert.Equal(t, 1, res.TotalLessons)

	rec = app.do(t, http.MethodGet, bonusPath, "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, path := range []string{lessonPath + "/exercises/" + ex.ID, lessonPath, bonusPath, bonusPath} {
		rec = app.do(t, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
	}
	rec = app.do(t, http.MethodGet, bonusPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBonusAPI_errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		setup    func()
		wantCode int
	}{
		{name: "invalid type", method: http.MethodPost, path: "/v1/bonuses", body: `{"type":"podcast"}`, wantCode: http.StatusBadRequest},
		{name: "malformed json", method: http.MethodPost, path: "/v1/bonuses", body: `{"title":`, wantCode: http.StatusBadRequest},
		{name: "update missing bonus", method: http.MethodPut, path: "/v1/bonuses/bonus_x", body: `{"title":"x"}`, wantCode: http.StatusNotFound},
		{name: "lesson on missing bonus", method: http.MethodPost, path: "/v1/bonuses/bonus_x/lessons", body: `{}`, wantCode: http.StatusNotFound},
		{
			name:     "storage failure",
			method:   http.MethodPost,
			path:     "/v1/bonuses",
			body:     `{"title":"x"}`,
			setup:    func() { app.store.FailNext(errors.New("quota exceeded")) },
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			rec := app.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestStudentAPI(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/v1/students", `{"name":"Ana","email":"ANA@X.COM","added_by":"someone@else.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ana student.Student
	decode(t, rec, &ana)
	assert.Equal(t, "ana@x.com", ana.Email)
	assert.Equal(t, adminEmail, ana.AddedBy, "added_by comes from the token")

	rec = app.do(t, http.MethodPost, "/v1/students", `{"name":"Ana","email":"ana@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, "/v1/students", `{"name":"","email":"b@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/v1/students", `{"name":"Bruno","email":"bruno@y.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var students []student.Student
	rec = app.do(t, http.MethodGet, "/v1/students?search=ANA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &students)
	require.Len(t, students, 1)
	assert.Equal(t, ana.ID, students[0].ID)

	rec = app.do(t, http.MethodGet, "/v1/students/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]int
	decode(t, rec, &stats)
	assert.Equal(t, map[string]int{"total": 2, "active": 2, "inactive": 0, "addedThisMonth": 2}, stats)

	for i := 0; i < 2; i++ {
		rec = app.do(t, http.MethodDelete, "/v1/students/"+ana.ID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec = app.do(t, http.MethodGet, "/v1/students", "")
	decode(t, rec, &students)
	assert.Len(t, students, 1)
}

func TestStudentAPI_unreachable(t *testing.T) {
	app := newTestApp(t, unreachableRepo{})

	rec := app.do(t, http.MethodGet, "/v1/students", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	rec = app.do(t, http.MethodDelete, "/v1/students/1", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCatalogEvents(t *testing.T) {
	app := newTestApp(t)
	ts := httptest.NewServer(app.srv)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/bonuses/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+app.token)

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	rec := app.do(t, http.MethodPost, "/v1/bonuses", `{"title":"Curso A"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	scanner := bufio.NewScanner(res.Body)
	var got string
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "event: ") {
			got = strings.TrimPrefix(line, "event: ")
			break
		}
	}
	assert.Equal(t, bonus.EventCatalogUpdated, got)
}
