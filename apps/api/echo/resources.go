package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core/resource"
)

type resourceApi struct {
	svc      *resource.Service
	validate *validator.Validate
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *resource.Service, validate *validator.Validate) {
	api := resourceApi{svc: svc, validate: validate}

	rg := g.Group("/resources", jwt)
	rg.GET("", api.list)
	rg.POST("", api.create)
	rg.POST("/reload", api.reload)
	rg.PATCH("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

func (api *resourceApi) list(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Session(ctx.Request().Context(), uid).View())
}

func (api *resourceApi) reload(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Reload(ctx.Request().Context(), uid).View())
}

func (api *resourceApi) create(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data resource.NewResource
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.Create(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *resourceApi) update(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data resource.UpdateResource
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}

	r, err := api.svc.Update(ctx.Request().Context(), uid, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.Delete(ctx.Request().Context(), uid, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
