package bonus

import (
	"context"
	"fmt"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/teacherpoli/backoffice/core"
)

// errUnchanged aborts a mutation that has nothing to do: no write, no broadcast.
var errUnchanged = errors.New("catalog unchanged")

type (
	// Store persists the whole catalog as a single snapshot.
	Store interface {
		// Load returns the stored catalog; found is false when nothing was ever saved.
		Load(ctx context.Context) (catalog []Resource, found bool, err error)
		Save(ctx context.Context, catalog []Resource) error
	}

	// Recorder observes the outcome of every catalog operation (metrics).
	Recorder interface {
		RecordCatalogOp(op string, err error)
	}

	// Service is the content repository: it owns the in-memory catalog, keeps it in
	// sync with its Store and notifies subscribers after every persisted change.
	Service struct {
		store      Store
		validate   *validator.Validate
		translator ut.Translator
		logger     core.Logger
		recorder   Recorder

		mu      sync.Mutex
		loaded  bool
		catalog []Resource
		hub     broadcaster
	}
)

func NewService(store Store, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger
	}
	return &Service{
		store:      store,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

func (svc *Service) SetRecorder(rec Recorder) {
	svc.recorder = rec
}

// Subscribe registers a listener called after each successful mutation.
func (svc *Service) Subscribe(fn Listener) *Subscription {
	return svc.hub.add(fn)
}

// List returns a copy of the catalog in creation order.
func (svc *Service) List(ctx context.Context) ([]Resource, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := svc.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneCatalog(svc.catalog), nil
}

func (svc *Service) Get(ctx context.Context, bonusID string) (Resource, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := svc.ensureLoaded(ctx); err != nil {
		return Resource{}, err
	}
	i := indexOfResource(svc.catalog, bonusID)
	if i < 0 {
		return Resource{}, core.NewNotFoundError("bonus", bonusID)
	}
	return cloneResource(svc.catalog[i]), nil
}

func (svc *Service) Create(ctx context.Context, nr NewResource) (Resource, error) {
	if err := nr.Validate(svc.validate, svc.translator); err != nil {
		svc.record("create", err)
		return Resource{}, err
	}

	var created Resource
	err := svc.mutate(ctx, "create", func(catalog []Resource) ([]Resource, error) {
		res := Resource{
			ID:            newID("bonus", true, resourceIDTaken(catalog)),
			Title:         nr.Title,
			Description:   nr.Description,
			Type:          nr.Type,
			Thumbnail:     nr.Thumbnail,
			TotalDuration: nr.TotalDuration,
			Rating:        DefaultRating,
			Lessons:       []Lesson{},
		}
		if res.Title == "" {
			res.Title = DefaultTitle
		}
		if res.Type == "" {
			res.Type = TypeCourse
		}
		if res.Thumbnail == "" {
			res.Thumbnail = DefaultThumbnail
		}
		if res.TotalDuration == "" {
			res.TotalDuration = DefaultTotalDuration
		}
		if nr.Rating != nil {
			res.Rating = *nr.Rating
		}
		if nr.WithStarterLesson {
			lesson, ex := starterLesson(res.Title)
			lesson.ID = newID("lesson", false, lessonIDTaken(res.Lessons))
			lesson.Exercises = append(lesson.Exercises, ex.toExercise(newID("exercise", false, exerciseIDTaken(nil))))
			res.Lessons = append(res.Lessons, lesson)
		}
		res.TotalLessons = len(res.Lessons)

		created = cloneResource(res)
		return append(catalog, res), nil
	})
	if err != nil {
		return Resource{}, err
	}
	return created, nil
}

// Update shallow-merges ur into the bonus. A supplied Lessons replaces the whole sequence.
func (svc *Service) Update(ctx context.Context, bonusID string, ur UpdateResource) (Resource, error) {
	if err := ur.Validate(svc.validate, svc.translator); err != nil {
		svc.record("update", err)
		return Resource{}, err
	}

	var updated Resource
	err := svc.mutate(ctx, "update", func(catalog []Resource) ([]Resource, error) {
		i := indexOfResource(catalog, bonusID)
		if i < 0 {
			return nil, core.NewNotFoundError("bonus", bonusID)
		}
		res := &catalog[i]
		if ur.Title != nil {
			res.Title = *ur.Title
		}
		if ur.Description != nil {
			res.Description = *ur.Description
		}
		if ur.Type != nil {
			res.Type = *ur.Type
		}
		if ur.Thumbnail != nil {
			res.Thumbnail = *ur.Thumbnail
		}
		if ur.TotalDuration != nil {
			res.TotalDuration = *ur.TotalDuration
		}
		if ur.Rating != nil {
			res.Rating = *ur.Rating
		}
		if ur.Downloads != nil {
			res.Downloads = *ur.Downloads
		}
		if ur.Lessons != nil {
			lessons, err := svc.normalizeLessons(*ur.Lessons, "lessons")
			if err != nil {
				return nil, err
			}
			res.Lessons = lessons
		}
		res.TotalLessons = len(res.Lessons)

		updated = cloneResource(*res)
		return catalog, nil
	})
	if err != nil {
		return Resource{}, err
	}
	return updated, nil
}

// Remove deletes the bonus with all its lessons and exercises. Absent ids are a no-op.
func (svc *Service) Remove(ctx context.Context, bonusID string) error {
	return svc.mutate(ctx, "remove", func(catalog []Resource) ([]Resource, error) {
		i := indexOfResource(catalog, bonusID)
		if i < 0 {
			return nil, errUnchanged
		}
		return append(catalog[:i], catalog[i+1:]...), nil
	})
}

func (svc *Service) AddLesson(ctx context.Context, bonusID string, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(svc.validate, svc.translator); err != nil {
		svc.record("add_lesson", err)
		return Lesson{}, err
	}

	var added Lesson
	err := svc.mutate(ctx, "add_lesson", func(catalog []Resource) ([]Resource, error) {
		i := indexOfResource(catalog, bonusID)
		if i < 0 {
			return nil, core.NewNotFoundError("bonus", bonusID)
		}
		res := &catalog[i]
		lesson := Lesson{
			ID:          newID("lesson", false, lessonIDTaken(res.Lessons)),
			Title:       nl.Title,
			Description: nl.Description,
			VideoURL:    nl.VideoURL,
			Duration:    nl.Duration,
			TextContent: nl.TextContent,
			Exercises:   make([]Exercise, 0, len(nl.Exercises)),
		}
		if lesson.Title == "" {
			lesson.Title = DefaultLessonTitle
		}
		for _, ne := range nl.Exercises {
			lesson.Exercises = append(lesson.Exercises, ne.toExercise(newID("exercise", false, exerciseIDTaken(lesson.Exercises))))
		}
		res.Lessons = append(res.Lessons, lesson)
		res.TotalLessons = len(res.Lessons)

		added = cloneLesson(lesson)
		return catalog, nil
	})
	if err != nil {
		return Lesson{}, err
	}
	return added, nil
}

// UpdateLesson merges ul into the lesson. A supplied Exercises replaces the whole sequence.
func (svc *Service) UpdateLesson(ctx context.Context, bonusID, lessonID string, ul UpdateLesson) (Lesson, error) {
	ul.clean()

	var updated Lesson
	err := svc.mutate(ctx, "update_lesson", func(catalog []Resource) ([]Resource, error) {
		lesson, err := findLesson(catalog, bonusID, lessonID)
		if err != nil {
			return nil, err
		}
		if ul.Title != nil {
			lesson.Title = *ul.Title
		}
		if ul.Description != nil {
			lesson.Description = *ul.Description
		}
		if ul.VideoURL != nil {
			lesson.VideoURL = *ul.VideoURL
		}
		if ul.Duration != nil {
			lesson.Duration = *ul.Duration
		}
		if ul.TextContent != nil {
			lesson.TextContent = *ul.TextContent
		}
		if ul.Completed != nil {
			lesson.Completed = *ul.Completed
		}
		if ul.Exercises != nil {
			exercises, err := svc.normalizeExercises(*ul.Exercises, "exercises")
			if err != nil {
				return nil, err
			}
			lesson.Exercises = exercises
		}

		updated = cloneLesson(*lesson)
		return catalog, nil
	})
	if err != nil {
		return Lesson{}, err
	}
	return updated, nil
}

// RemoveLesson is idempotent: an absent bonus or lesson is a no-op.
func (svc *Service) RemoveLesson(ctx context.Context, bonusID, lessonID string) error {
	return svc.mutate(ctx, "remove_lesson", func(catalog []Resource) ([]Resource, error) {
		i := indexOfResource(catalog, bonusID)
		if i < 0 {
			return nil, errUnchanged
		}
		res := &catalog[i]
		j := indexOfLesson(res.Lessons, lessonID)
		if j < 0 {
			return nil, errUnchanged
		}
		res.Lessons = append(res.Lessons[:j], res.Lessons[j+1:]...)
		res.TotalLessons = len(res.Lessons)
		return catalog, nil
	})
}

func (svc *Service) AddExercise(ctx context.Context, bonusID, lessonID string, ne NewExercise) (Exercise, error) {
	if err := ne.Validate(svc.validate, svc.translator); err != nil {
		svc.record("add_exercise", err)
		return Exercise{}, err
	}

	var added Exercise
	err := svc.mutate(ctx, "add_exercise", func(catalog []Resource) ([]Resource, error) {
		lesson, err := findLesson(catalog, bonusID, lessonID)
		if err != nil {
			return nil, err
		}
		ex := ne.toExercise(newID("exercise", false, exerciseIDTaken(lesson.Exercises)))
		lesson.Exercises = append(lesson.Exercises, ex)

		added = cloneExercise(ex)
		return catalog, nil
	})
	if err != nil {
		return Exercise{}, err
	}
	return added, nil
}

// RemoveExercise is idempotent: absent ids at any level are a no-op.
func (svc *Service) RemoveExercise(ctx context.Context, bonusID, lessonID, exerciseID string) error {
	return svc.mutate(ctx, "remove_exercise", func(catalog []Resource) ([]Resource, error) {
		lesson, err := findLesson(catalog, bonusID, lessonID)
		if err != nil {
			return nil, errUnchanged
		}
		k := indexOfExercise(lesson.Exercises, exerciseID)
		if k < 0 {
			return nil, errUnchanged
		}
		lesson.Exercises = append(lesson.Exercises[:k], lesson.Exercises[k+1:]...)
		return catalog, nil
	})
}

// Reset replaces the whole catalog with DefaultCatalog.
func (svc *Service) Reset(ctx context.Context) error {
	return svc.mutate(ctx, "reset", func([]Resource) ([]Resource, error) {
		return DefaultCatalog(), nil
	})
}

// mutate applies fn to a copy of the catalog, saves the result and only then swaps it
// in, so a failed save leaves memory on the last persisted snapshot.
// Listeners run after the lock is released.
func (svc *Service) mutate(ctx context.Context, op string, fn func(catalog []Resource) ([]Resource, error)) error {
	svc.mu.Lock()
	err := svc.apply(ctx, fn)
	svc.mu.Unlock()

	if errors.Is(err, errUnchanged) {
		svc.record(op, nil)
		return nil
	}
	svc.record(op, err)
	if err != nil {
		return err
	}
	svc.hub.broadcast()
	return nil
}

func (svc *Service) apply(ctx context.Context, fn func(catalog []Resource) ([]Resource, error)) error {
	if err := svc.ensureLoaded(ctx); err != nil {
		return err
	}
	next, err := fn(cloneCatalog(svc.catalog))
	if err != nil {
		return err
	}
	if err := svc.store.Save(ctx, next); err != nil {
		svc.logger.Error("saving catalog snapshot", err)
		return core.NewPersistenceError(errors.Wrap(err, "saving catalog"))
	}
	svc.catalog = next
	return nil
}

// ensureLoaded reads the snapshot on first access. Callers hold svc.mu.
func (svc *Service) ensureLoaded(ctx context.Context) error {
	if svc.loaded {
		return nil
	}
	catalog, found, err := svc.store.Load(ctx)
	if err != nil {
		svc.logger.Error("loading catalog snapshot", err)
		return core.NewPersistenceError(errors.Wrap(err, "loading catalog"))
	}
	if !found {
		svc.logger.Info("no catalog snapshot found, using the default catalog")
		catalog = DefaultCatalog()
	}
	svc.catalog = normalizeCatalog(catalog)
	svc.loaded = true
	return nil
}

func (svc *Service) record(op string, err error) {
	if svc.recorder != nil {
		svc.recorder.RecordCatalogOp(op, err)
	}
}

// normalizeLessons prepares a replacement lesson sequence: missing ids are generated,
// repeated ids rejected and every exercise validated.
func (svc *Service) normalizeLessons(lessons []Lesson, field string) ([]Lesson, error) {
	out := cloneLessons(lessons)
	for i := range out {
		path := fmt.Sprintf("%s[%d]", field, i)
		if out[i].ID == "" {
			out[i].ID = newID("lesson", false, lessonIDTaken(out))
		} else if indexOfLesson(out[:i], out[i].ID) >= 0 {
			return nil, duplicateIDError(path, out[i].ID)
		}
		exercises, err := svc.normalizeExercises(out[i].Exercises, path+".exercises")
		if err != nil {
			return nil, err
		}
		out[i].Exercises = exercises
	}
	return out, nil
}

func (svc *Service) normalizeExercises(exercises []Exercise, field string) ([]Exercise, error) {
	out := make([]Exercise, len(exercises))
	for i, ex := range exercises {
		path := fmt.Sprintf("%s[%d]", field, i)
		ne := NewExercise{
			Question:      ex.Question,
			Options:       append([]string(nil), ex.Options...),
			CorrectAnswer: ex.CorrectAnswer,
			Explanation:   ex.Explanation,
		}
		if err := ne.Validate(svc.validate, svc.translator); err != nil {
			return nil, prefixFields(err, path)
		}
		out[i] = ne.toExercise(ex.ID)
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = newID("exercise", false, exerciseIDTaken(out))
		} else if indexOfExercise(out[:i], out[i].ID) >= 0 {
			return nil, duplicateIDError(fmt.Sprintf("%s[%d]", field, i), out[i].ID)
		}
	}
	return out, nil
}

func findLesson(catalog []Resource, bonusID, lessonID string) (*Lesson, error) {
	i := indexOfResource(catalog, bonusID)
	if i < 0 {
		return nil, core.NewNotFoundError("bonus", bonusID)
	}
	j := indexOfLesson(catalog[i].Lessons, lessonID)
	if j < 0 {
		return nil, core.NewNotFoundError("lesson", lessonID)
	}
	return &catalog[i].Lessons[j], nil
}

// normalizeCatalog makes a loaded snapshot satisfy the catalog invariants:
// non-nil slices and totalLessons == len(lessons).
func normalizeCatalog(catalog []Resource) []Resource {
	out := cloneCatalog(catalog)
	for i := range out {
		out[i].TotalLessons = len(out[i].Lessons)
	}
	return out
}

func duplicateIDError(field, id string) error {
	msg := fmt.Sprintf("duplicate id %q", id)
	return core.NewValidationError(nil, core.FieldError{Field: field + ".id", Error: msg})
}

func prefixFields(err error, prefix string) error {
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		return err
	}
	flds := make([]core.FieldError, len(vErr.Fields))
	for i, f := range vErr.Fields {
		flds[i] = core.FieldError{Field: prefix + "." + f.Field, Error: f.Error}
	}
	return core.NewValidationError(vErr.Err, flds...)
}
