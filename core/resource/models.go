package resource

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/docsync"
)

// Resource is a saved study link (article, video, course page...).
type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// NewResource contains information needed to create a new Resource.
// The url is not validated as well-formed; input-level hinting is the
// frontend's business.
type NewResource struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Category string `json:"category" validate:"required"`
}

func (nr *NewResource) Validate(validate *validator.Validate) error {
	nr.Title = core.CleanString(nr.Title)
	nr.URL = core.CleanString(nr.URL)
	nr.Category = core.CleanString(nr.Category)
	return validate.Struct(nr)
}

// UpdateResource defines what information may be provided to modify an
// existing Resource. Unset fields are left untouched.
type UpdateResource struct {
	Title    null.String `json:"title"`
	URL      null.String `json:"url"`
	Category null.String `json:"category"`
}

func (ur *UpdateResource) Partial() map[string]interface{} {
	flds := make(map[string]interface{})
	if ur.Title.Valid {
		flds["title"] = core.CleanString(ur.Title.String)
	}
	if ur.URL.Valid {
		flds["url"] = core.CleanString(ur.URL.String)
	}
	if ur.Category.Valid {
		flds["category"] = core.CleanString(ur.Category.String)
	}
	return flds
}

func Schema() docsync.Schema[Resource] {
	return docsync.Schema[Resource]{
		Collection: "studyResources",
		Label:      "study resource",
		OwnerField: "userId",
		ID:         func(r Resource) string { return r.ID },
		WithID:     func(r Resource, id string) Resource { r.ID = id; return r },
	}
}
