package student

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
)

var nowFunc = time.Now // mockable

type (
	// Repository is the remote collaborator that owns the roster.
	// Implementations report duplicates with ErrEmailExists and missing ids with ErrNotFound.
	Repository interface {
		// InsertStudent stores s and returns it with the store-assigned ID and AddedAt.
		InsertStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
		// QueryStudents returns the matching students in store-defined order.
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
	}

	Recorder interface {
		RecordDirectoryOp(op string, err error)
	}

	// Directory is the student roster. It keeps no local state: every read goes to the repository.
	Directory struct {
		repo       Repository
		validate   *validator.Validate
		translator ut.Translator
		logger     core.Logger
		mailSvc    core.EmailService
		recorder   Recorder
	}
)

func NewDirectory(repo Repository, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Directory {
	if logger == nil {
		logger = core.NopLogger
	}
	return &Directory{
		repo:       repo,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// SetMailer enables the welcome mail sent after each enrollment.
func (dir *Directory) SetMailer(mailSvc core.EmailService) {
	dir.mailSvc = mailSvc
}

func (dir *Directory) SetRecorder(rec Recorder) {
	dir.recorder = rec
}

func (dir *Directory) Add(ctx context.Context, ns NewStudent) (s Student, err error) {
	defer func() { dir.record("add", err) }()

	if err := ns.Validate(dir.validate, dir.translator); err != nil {
		return Student{}, err
	}
	s, err = dir.repo.InsertStudent(ctx, Student{
		Name:    ns.Name,
		Email:   ns.Email,
		Notes:   ns.Notes,
		Status:  StatusActive,
		AddedBy: ns.AddedBy,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return Student{}, core.NewConflictError(err.Error())
		}
		dir.logger.Error("inserting student", err, core.Actor{Email: ns.AddedBy})
		return Student{}, core.NewTransportError("inserting student", err)
	}
	dir.logger.Info(fmt.Sprintf("student %s enrolled", s.Email), core.Actor{Email: ns.AddedBy})
	dir.sendWelcomeMail(s)
	return s, nil
}

func (dir *Directory) Remove(ctx context.Context, id string) (err error) {
	defer func() { dir.record("remove", err) }()

	if err := dir.repo.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.NewNotFoundError("student", id)
		}
		return core.NewTransportError("deleting student", err)
	}
	return nil
}

func (dir *Directory) List(ctx context.Context) ([]Student, error) {
	return dir.query(ctx, "list", QueryFilter{})
}

// Search matches query against names and emails, ignoring case. A blank query lists everyone.
func (dir *Directory) Search(ctx context.Context, query string) ([]Student, error) {
	return dir.query(ctx, "search", QueryFilter{Search: core.CleanString(query)})
}

// Stats counts the roster; "this month" is the current calendar month in UTC.
func (dir *Directory) Stats(ctx context.Context) (Stats, error) {
	students, err := dir.query(ctx, "stats", QueryFilter{})
	if err != nil {
		return Stats{}, err
	}

	now := nowFunc().UTC()
	stats := Stats{Total: len(students)}
	for _, s := range students {
		switch s.Status {
		case StatusActive:
			stats.Active++
		case StatusInactive:
			stats.Inactive++
		}
		added := s.AddedAt.UTC()
		if added.Year() == now.Year() && added.Month() == now.Month() {
			stats.AddedThisMonth++
		}
	}
	return stats, nil
}

func (dir *Directory) query(ctx context.Context, op string, filter QueryFilter) ([]Student, error) {
	students, err := dir.repo.QueryStudents(ctx, filter)
	if err != nil {
		err = core.NewTransportError("querying students", err)
	}
	dir.record(op, err)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []Student{}
	}
	return students, nil
}

func (dir *Directory) sendWelcomeMail(s Student) {
	if dir.mailSvc == nil {
		return
	}
	dir.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: s.Name, Address: s.Email}},
		Subject: "Bem-vindo(a) à TeacherPoli",
		Body: fmt.Sprintf(
			"Olá %s,\n\nSeu acesso à plataforma foi liberado. Entre com o e-mail %s para começar.\n\nBons estudos!",
			s.Name, s.Email,
		),
	})
}

func (dir *Directory) record(op string, err error) {
	if dir.recorder != nil {
		dir.recorder.RecordDirectoryOp(op, err)
	}
}
