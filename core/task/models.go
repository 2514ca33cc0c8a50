package task

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTask contains information needed to create a new Task.
// Completed always starts out false.
type NewTask struct {
	Title string `json:"title" validate:"required"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	return validate.Struct(nt)
}

func Schema() docsync.Schema[Task] {
	return docsync.Schema[Task]{
		Collection: "tasks",
		Label:      "task",
		OwnerField: "userId",
		ID:         func(t Task) string { return t.ID },
		WithID:     func(t Task, id string) Task { t.ID = id; return t },
	}
}
