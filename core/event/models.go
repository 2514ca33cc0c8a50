package event

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	return validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an existing
// Event. Unset fields are left untouched.
type UpdateEvent struct {
	Title       null.String `json:"title"`
	Description null.String `json:"description"`
	Date        null.String `json:"date"`
	Time        null.String `json:"time"`
}

func (ue *UpdateEvent) Validate() error {
	if ue.Title.Valid {
		if ue.Title.String = core.CleanString(ue.Title.String); ue.Title.String == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "title", Error: "this field is required"})
		}
	}
	if ue.Description.Valid {
		if ue.Description.String = core.CleanString(ue.Description.String); ue.Description.String == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "description", Error: "this field is required"})
		}
	}
	if ue.Date.Valid {
		if _, err := time.Parse(dateLayout, ue.Date.String); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if ue.Time.Valid {
		if _, err := time.Parse(timeLayout, ue.Time.String); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "time", Error: "must be a valid time (HH:MM)"})
		}
	}
	return nil
}

// Partial flattens the set fields for a partial store update.
func (ue *UpdateEvent) Partial() map[string]interface{} {
	flds := make(map[string]interface{})
	if ue.Title.Valid {
		flds["title"] = ue.Title.String
	}
	if ue.Description.Valid {
		flds["description"] = ue.Description.String
	}
	if ue.Date.Valid {
		flds["date"] = ue.Date.String
	}
	if ue.Time.Valid {
		flds["time"] = ue.Time.String
	}
	return flds
}

func Schema() docsync.Schema[Event] {
	return docsync.Schema[Event]{
		Collection: "events",
		Label:      "event",
		OwnerField: "userId",
		ID:         func(e Event) string { return e.ID },
		WithID:     func(e Event, id string) Event { e.ID = id; return e },
	}
}
