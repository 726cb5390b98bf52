package student

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/teacherpoli/backoffice/core"
)

// Statuses
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Status string

// Student is a manually provisioned roster entry. Records are never updated in place.
type Student struct {
	ID      string    `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Email   string    `json:"email" db:"email"`
	Notes   string    `json:"notes,omitempty" db:"notes"`
	Status  Status    `json:"status" db:"status"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
	AddedBy string    `json:"added_by" db:"added_by"`
}

// NewStudent contains information needed to enroll a Student.
type NewStudent struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,email"`
	Notes   string `json:"notes"`
	AddedBy string `json:"added_by"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Notes = core.CleanString(ns.Notes)
	ns.AddedBy = core.CleanString(ns.AddedBy, true /* lower */)
	return core.ValidateStruct(validate, translator, ns)
}

// Stats is derived from the full roster on every call.
type Stats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	Inactive       int `json:"inactive"`
	AddedThisMonth int `json:"addedThisMonth"`
}

// QueryFilter narrows QueryStudents. Search is a case-insensitive substring of the
// name or the email; empty matches everyone.
type QueryFilter struct {
	Search string
}
