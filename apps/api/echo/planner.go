package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studydesk/core/planner"
)

type plannerApi struct {
	svc      *planner.Service
	validate *validator.Validate
}

func registerPlannerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *planner.Service, validate *validator.Validate) {
	api := plannerApi{svc: svc, validate: validate}

	pg := g.Group("/planner", jwt)
	pg.GET("/plans", api.listPlans)
	pg.POST("/plans", api.addPlan)
	pg.GET("/milestones", api.listMilestones)
	pg.POST("/milestones", api.addMilestone)
	pg.GET("/schedules", api.listSchedules)
	pg.POST("/schedules", api.addSchedule)
}

func (api *plannerApi) listPlans(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Plans(ctx.Request().Context(), uid).View())
}

func (api *plannerApi) addPlan(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data planner.NewSemesterPlan
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSemesterPlan")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.AddPlan(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *plannerApi) listMilestones(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Milestones(ctx.Request().Context(), uid).View())
}

func (api *plannerApi) addMilestone(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data planner.NewProjectMilestone
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProjectMilestone")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	m, err := api.svc.AddMilestone(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *plannerApi) listSchedules(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Schedules(ctx.Request().Context(), uid).View())
}

func (api *plannerApi) addSchedule(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data planner.NewStudySchedule
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudySchedule")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.AddSchedule(ctx.Request().Context(), uid, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}
