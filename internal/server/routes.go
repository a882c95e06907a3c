package server

import (
	"context"
	"fmt"

	"github.com/nfrund/safeonboard/internal/handlers"
	"github.com/nfrund/safeonboard/internal/wizardcache"
	"github.com/samber/do/v2"
)

// RegisterRoutes mounts the core routes and boots every module. ctx
// bounds the lifetime of the modules' background subscribers.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	homeHandler := handlers.NewHomeHandler()
	s.E.GET("/", homeHandler.HomeGet)

	var wizards handlers.Counter
	if reg, err := do.Invoke[*wizardcache.Registry](s.Injector); err == nil {
		wizards = reg
	}
	s.E.GET("/health", handlers.NewHealthHandler(wizards).HealthGet)

	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root, s.Injector); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}
