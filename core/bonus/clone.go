package bonus

// Deep copies. Slices always come out non-nil so a catalog compares equal to itself
// after a JSON round trip.

func cloneCatalog(catalog []Resource) []Resource {
	out := make([]Resource, len(catalog))
	for i := range catalog {
		out[i] = cloneResource(catalog[i])
	}
	return out
}

func cloneResource(r Resource) Resource {
	r.Lessons = cloneLessons(r.Lessons)
	return r
}

func cloneLessons(lessons []Lesson) []Lesson {
	out := make([]Lesson, len(lessons))
	for i := range lessons {
		out[i] = cloneLesson(lessons[i])
	}
	return out
}

func cloneLesson(l Lesson) Lesson {
	l.Exercises = cloneExercises(l.Exercises)
	return l
}

func cloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	for i := range exercises {
		out[i] = cloneExercise(exercises[i])
	}
	return out
}

func cloneExercise(e Exercise) Exercise {
	e.Options = append(make([]string, 0, len(e.Options)), e.Options...)
	return e
}
