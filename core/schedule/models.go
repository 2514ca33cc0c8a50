package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

// Class is one recurring weekly class session.
type Class struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room"`
}

// NewClass contains information needed to create a new Class.
// Overlapping slots are allowed; the schedule renders whatever is stored.
type NewClass struct {
	Name      string `json:"name" validate:"required"`
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	Room      string `json:"room" validate:"required"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Room = core.CleanString(nc.Room)
	return validate.Struct(nc)
}

func Schema() docsync.Schema[Class] {
	return docsync.Schema[Class]{
		Collection:  "classes",
		Label:       "class",
		LabelPlural: "classes",
		OwnerField:  "userId",
		ID:          func(c Class) string { return c.ID },
		WithID:      func(c Class, id string) Class { c.ID = id; return c },
	}
}
