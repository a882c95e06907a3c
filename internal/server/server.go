package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/safeonboard/internal/app"
	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/handlers"
	"github.com/nfrund/safeonboard/internal/middleware"
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Injector *do.RootScope
	modules  []module.Module
	logger   *slog.Logger
}

// New builds the container, lets every module register its services and
// configures echo. Routes are mounted by RegisterRoutes.
func New(cfg config.Provider, logger *slog.Logger, modules []module.Module) (*Server, error) {
	injector := app.NewContainer(cfg, logger)
	for _, m := range modules {
		if err := m.Register(injector); err != nil {
			return nil, fmt.Errorf("register module %s: %w", m.Name(), err)
		}
		logger.Debug("Module registered", "module", m.Name())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = do.MustInvoke[*rendering.UniversalRenderer](injector)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.Recover())

	secure := strings.HasPrefix(cfg.GetAppBaseURL(), "https://")
	e.Use(session.Middleware(middleware.NewCookieStore(cfg.GetSessionSecret(), secure)))

	setupErrorHandling(e)

	return &Server{
		E:        e,
		Cfg:      cfg,
		Injector: injector,
		modules:  modules,
		logger:   logger,
	}, nil
}
