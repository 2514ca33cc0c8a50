package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core/event"
)

type eventApi struct {
	svc      *event.Service
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *event.Service, validate *validator.Validate) {
	api := eventApi{svc: svc, validate: validate}

	eg := g.Group("/events", jwt)
	eg.GET("", api.list)
	eg.POST("", api.create)
	eg.POST("/reload", api.reload)
	eg.PATCH("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *eventApi) list(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Session(ctx.Request().Context(), uid).View())
}

func (api *eventApi) reload(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Reload(ctx.Request().Context(), uid).View())
}

func (api *eventApi) create(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data event.NewEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.Create(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *eventApi) update(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data event.UpdateEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	e, err := api.svc.Update(ctx.Request().Context(), uid, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.Delete(ctx.Request().Context(), uid, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
