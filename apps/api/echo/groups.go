package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core/group"
)

type groupApi struct {
	svc      *group.Service
	validate *validator.Validate
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *group.Service, validate *validator.Validate) {
	api := groupApi{svc: svc, validate: validate}

	gg := g.Group("/study-groups", jwt)
	gg.GET("", api.list)
	gg.POST("", api.create)
	gg.POST("/reload", api.reload)
	gg.POST("/:id/leave", api.leave)
}

func (api *groupApi) list(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Session(ctx.Request().Context(), uid).View())
}

func (api *groupApi) reload(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Reload(ctx.Request().Context(), uid).View())
}

func (api *groupApi) create(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data group.NewGroup
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	grp, err := api.svc.Create(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) leave(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.Leave(ctx.Request().Context(), uid, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
