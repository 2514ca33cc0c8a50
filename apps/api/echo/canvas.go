package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/canvas"
)

type canvasApi struct {
	client *canvas.Client
}

func registerCanvasAPI(g *echo.Group, jwt echo.MiddlewareFunc, client *canvas.Client) {
	api := canvasApi{client: client}

	cg := g.Group("/canvas", jwt)
	cg.GET("", api.fetchAll)
	cg.POST("/assignments/:id/submit", api.submitAssignment)
}

func (api *canvasApi) fetchAll(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	snapshot, err := api.client.FetchAll(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "fetching canvas data")
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

func (api *canvasApi) submitAssignment(ctx echo.Context) error {
	if _, err := getContextUserID(ctx); err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: canvas.ErrFileRequired.Error()})
	}
	file, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening submission file")
	}
	defer func() { _ = file.Close() }()

	err = api.client.SubmitAssignment(ctx.Request().Context(), ctx.Param("id"), file, fh.Filename)
	if err != nil {
		switch errors.Cause(err) {
		case canvas.ErrFileRequired:
			return core.NewValidationError(nil, core.FieldError{Field: "file", Error: canvas.ErrFileRequired.Error()})
		case canvas.ErrAssignmentUnknown:
			return errHttpNotFound
		}
		return errors.Wrap(err, "submitting assignment")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Assignment submitted successfully!"})
}

type SuccessResponse struct {
	Success string `json:"success"`
}
