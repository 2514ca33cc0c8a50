package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studydesk/core/announcement"
)

type announcementApi struct {
	svc *announcement.Service
}

func registerAnnouncementAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *announcement.Service) {
	api := announcementApi{svc: svc}

	ag := g.Group("/announcements", jwt)
	ag.GET("", api.list)
	ag.POST("/reload", api.reload)
}

func (api *announcementApi) list(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Session(ctx.Request().Context(), uid).View())
}

func (api *announcementApi) reload(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Reload(ctx.Request().Context(), uid).View())
}
