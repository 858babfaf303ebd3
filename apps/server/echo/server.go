// Package echoapi is a development stand-in for the classroom board service:
// the request/response API and the per-lecture push streams the engine
// consumes. Production deployments point the engine at the real service;
// this one exists for local runs and integration tests.
package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/storage/memdb"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Conf           *core.Config
		Logger         core.Logger
		Questions      *memdb.QuestionRepository
		Catalog        *memdb.CatalogRepository
		Accounts       *memdb.AccountRepository
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		hub  *hub
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
		hub:  newHub(opts.Catalog),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	// the browser EventSource API cannot set headers; the stream route takes
	// its credential as a query param instead
	queryJWT := middleware.JWTWithConfig(newQueryJWTConfig(conf))

	registerLoginAPI(v1, s.opts.Accounts, conf)
	registerCatalogAPI(v1, jwt, s.opts.Catalog)
	registerBoardAPI(v1, jwt, s.opts.Questions, s.opts.Catalog, s.hub)
	v1.GET("/lectures/:id/stream", s.hub.subscribe, queryJWT)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	s.hub.close()
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Ubao API!")
}
