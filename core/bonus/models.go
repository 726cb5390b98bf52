package bonus

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/teacherpoli/backoffice/core"
)

// Resource types
const (
	TypeCourse Type = "course"
	TypeEbook  Type = "ebook"
	TypeGuide  Type = "guide"
	TypeAudio  Type = "audio"
)

// Defaults applied when a field is omitted on creation.
const (
	DefaultTitle         = "Novo bônus"
	DefaultLessonTitle   = "Nova aula"
	DefaultThumbnail     = "https://images.pexels.com/photos/4145190/pexels-photo-4145190.jpeg?auto=compress&cs=tinysrgb&w=800"
	DefaultTotalDuration = "1h"
	DefaultRating        = 4.5
)

// OptionsPerExercise is the exact number of options of a quiz question.
const OptionsPerExercise = 4

type Type string

// Resource is a bonus learning resource. It owns its lessons which own their exercises.
type Resource struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          Type     `json:"type"`
	Thumbnail     string   `json:"thumbnail"`
	TotalLessons  int      `json:"totalLessons"` // always len(Lessons)
	TotalDuration string   `json:"totalDuration"`
	Rating        float64  `json:"rating"`
	Downloads     int      `json:"downloads"`
	Lessons       []Lesson `json:"lessons"`
}

type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoURL    string     `json:"videoUrl"`
	Duration    string     `json:"duration"`
	TextContent string     `json:"textContent"`
	Exercises   []Exercise `json:"exercises"`
	Completed   bool       `json:"completed"` // viewer progress
}

// Exercise is a multiple-choice quiz question.
type Exercise struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// NewResource contains information needed to create a new Resource.
// Every field is optional; omitted ones get defaults.
type NewResource struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Type              Type     `json:"type" validate:"omitempty,oneof=course ebook guide audio"`
	Thumbnail         string   `json:"thumbnail"`
	TotalDuration     string   `json:"totalDuration"`
	Rating            *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	WithStarterLesson bool     `json:"withStarterLesson"`
}

func (nr *NewResource) Validate(validate *validator.Validate, translator ut.Translator) error {
	nr.Title = core.CleanString(nr.Title)
	nr.Description = core.CleanString(nr.Description)
	nr.Type = Type(core.CleanString(string(nr.Type), true /* lower */))
	nr.Thumbnail = core.CleanString(nr.Thumbnail)
	nr.TotalDuration = core.CleanString(nr.TotalDuration)
	return core.ValidateStruct(validate, translator, nr)
}

// UpdateResource defines what may be merged into an existing Resource.
// nil fields are left untouched; Lessons, when set, replaces the whole sequence.
type UpdateResource struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Type          *Type     `json:"type" validate:"omitempty,oneof=course ebook guide audio"`
	Thumbnail     *string   `json:"thumbnail"`
	TotalDuration *string   `json:"totalDuration"`
	Rating        *float64  `json:"rating" validate:"omitempty,min=0,max=5"`
	Downloads     *int      `json:"downloads" validate:"omitempty,min=0"`
	Lessons       *[]Lesson `json:"lessons"`
}

func (ur *UpdateResource) Validate(validate *validator.Validate, translator ut.Translator) error {
	cleanPtr(ur.Title)
	cleanPtr(ur.Description)
	cleanPtr(ur.Thumbnail)
	cleanPtr(ur.TotalDuration)
	if ur.Type != nil {
		t := Type(core.CleanString(string(*ur.Type), true /* lower */))
		ur.Type = &t
	}
	return core.ValidateStruct(validate, translator, ur)
}

// NewLesson contains information needed to append a Lesson to a Resource.
type NewLesson struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	VideoURL    string        `json:"videoUrl"`
	Duration    string        `json:"duration"`
	TextContent string        `json:"textContent"`
	Exercises   []NewExercise `json:"exercises" validate:"dive"`
}

func (nl *NewLesson) Validate(validate *validator.Validate, translator ut.Translator) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Description = core.CleanString(nl.Description)
	nl.VideoURL = core.CleanString(nl.VideoURL)
	nl.Duration = core.CleanString(nl.Duration)
	for i := range nl.Exercises {
		nl.Exercises[i].clean()
	}
	return core.ValidateStruct(validate, translator, nl)
}

// UpdateLesson defines what may be merged into an existing Lesson.
// Exercises, when set, replaces the whole sequence.
type UpdateLesson struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	VideoURL    *string     `json:"videoUrl"`
	Duration    *string     `json:"duration"`
	TextContent *string     `json:"textContent"`
	Exercises   *[]Exercise `json:"exercises"`
	Completed   *bool       `json:"completed"`
}

func (ul *UpdateLesson) clean() {
	cleanPtr(ul.Title)
	cleanPtr(ul.Description)
	cleanPtr(ul.VideoURL)
	cleanPtr(ul.Duration)
}

// NewExercise contains information needed to append an Exercise to a Lesson.
type NewExercise struct {
	Question      string   `json:"question"`
	Options       []string `json:"options" validate:"len=4,dive,notblank"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
	Explanation   string   `json:"explanation"`
}

func (ne *NewExercise) clean() {
	ne.Question = core.CleanString(ne.Question)
	ne.Explanation = core.CleanString(ne.Explanation)
	for i := range ne.Options {
		ne.Options[i] = core.CleanString(ne.Options[i])
	}
}

func (ne *NewExercise) Validate(validate *validator.Validate, translator ut.Translator) error {
	ne.clean()
	return core.ValidateStruct(validate, translator, ne)
}

func (ne NewExercise) toExercise(id string) Exercise {
	return Exercise{
		ID:            id,
		Question:      ne.Question,
		Options:       append(make([]string, 0, len(ne.Options)), ne.Options...),
		CorrectAnswer: ne.CorrectAnswer,
		Explanation:   ne.Explanation,
	}
}

func cleanPtr(s *string) {
	if s != nil {
		*s = core.CleanString(*s)
	}
}
