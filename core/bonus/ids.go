package bonus

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nowFunc = time.Now // mockable

// newID returns `<prefix>_<unix ms>`, or `<prefix>_<unix ms>_<random>` when random is
// requested or the plain form is already taken in the caller's scope.
func newID(prefix string, random bool, taken func(id string) bool) string {
	base := prefix + "_" + strconv.FormatInt(nowFunc().UnixNano()/int64(time.Millisecond), 10)
	id := base
	if random {
		id = base + "_" + randomSuffix()
	}
	for taken(id) {
		id = base + "_" + randomSuffix()
	}
	return id
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}

func resourceIDTaken(catalog []Resource) func(string) bool {
	return func(id string) bool { return indexOfResource(catalog, id) >= 0 }
}

func lessonIDTaken(lessons []Lesson) func(string) bool {
	return func(id string) bool { return indexOfLesson(lessons, id) >= 0 }
}

func exerciseIDTaken(exercises []Exercise) func(string) bool {
	return func(id string) bool { return indexOfExercise(exercises, id) >= 0 }
}

func indexOfResource(catalog []Resource, id string) int {
	for i := range catalog {
		if catalog[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfLesson(lessons []Lesson, id string) int {
	for i := range lessons {
		if lessons[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfExercise(exercises []Exercise, id string) int {
	for i := range exercises {
		if exercises[i].ID == id {
			return i
		}
	}
	return -1
}
