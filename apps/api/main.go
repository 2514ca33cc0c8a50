package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/studydesk/apps/api/echo"
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
	emailsvc "github.com/trezcool/studydesk/services/email"
	logsvc "github.com/trezcool/studydesk/services/logger"
	"github.com/trezcool/studydesk/storage/docstore"
	"github.com/trezcool/studydesk/storage/docstore/inmem"
	"github.com/trezcool/studydesk/storage/docstore/postgres"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the document store
	var store core.DocumentStore
	var db *sqlx.DB
	switch conf.Database.Engine {
	case "postgres":
		var err error
		if db, err = setUpDB(conf); err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error(fmt.Sprintf("closing database: %v", err), err)
			}
		}()
		store = postgres.NewStore(db)
	default:
		store = inmem.NewStore()
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(docstore.NewUserRepository(store), mailSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Logger:          logger,
			UserSvc:         usrSvc,
			TaskSvc:         task.NewService(store),
			ScheduleSvc:     schedule.NewService(store),
			EventSvc:        event.NewService(store),
			ResourceSvc:     resource.NewService(store),
			GroupSvc:        group.NewService(store),
			PlannerSvc:      planner.NewService(store),
			AnnouncementSvc: announcement.NewService(store),
			Canvas:          canvas.NewClient(),
			Validate:        validate,
			Translator:      translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := postgres.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := postgres.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
