package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/studydesk/core"
	"github.com/trezcool/studydesk/core/announcement"
	"github.com/trezcool/studydesk/core/canvas"
	"github.com/trezcool/studydesk/core/event"
	"github.com/trezcool/studydesk/core/group"
	"github.com/trezcool/studydesk/core/planner"
	"github.com/trezcool/studydesk/core/resource"
	"github.com/trezcool/studydesk/core/schedule"
	"github.com/trezcool/studydesk/core/task"
	"github.com/trezcool/studydesk/core/user"
)

type (
	ServerDeps struct {
		Logger          core.Logger
		UserSvc         *user.Service
		TaskSvc         *task.Service
		ScheduleSvc     *schedule.Service
		EventSvc        *event.Service
		ResourceSvc     *resource.Service
		GroupSvc        *group.Service
		PlannerSvc      *planner.Service
		AnnouncementSvc *announcement.Service
		Canvas          *canvas.Client
		Validate        *validator.Validate
		Translator      ut.Translator
		DisableReqLogs  bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.deps.UserSvc, s.deps.Validate)
	registerTaskAPI(v1, jwt, s.deps.TaskSvc, s.deps.Validate)
	registerScheduleAPI(v1, jwt, s.deps.ScheduleSvc, s.deps.Validate)
	registerEventAPI(v1, jwt, s.deps.EventSvc, s.deps.Validate)
	registerResourceAPI(v1, jwt, s.deps.ResourceSvc, s.deps.Validate)
	registerGroupAPI(v1, jwt, s.deps.GroupSvc, s.deps.Validate)
	registerPlannerAPI(v1, jwt, s.deps.PlannerSvc, s.deps.Validate)
	registerAnnouncementAPI(v1, jwt, s.deps.AnnouncementSvc)
	registerCanvasAPI(v1, jwt, s.deps.Canvas)
}

func (s *Server) Start() {
	if err := s.app.Start(core.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to StudyDesk API!")
}
