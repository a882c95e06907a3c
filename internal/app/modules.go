package app

import (
	"github.com/nfrund/safeonboard/internal/module"
	"github.com/nfrund/safeonboard/internal/modules/confirmation"
	"github.com/nfrund/safeonboard/internal/modules/login"
	"github.com/nfrund/safeonboard/internal/modules/notifications"
	"github.com/nfrund/safeonboard/internal/modules/onboarding"
)

// NewModules returns every active module in boot order.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		onboarding.New(),
		login.New(),
		confirmation.New(),
		notifications.New(),
	}
}
