package roi

import (
	"github.com/markproof/portal/internal/roi/service"
	"go.uber.org/fx"
)

var Module = fx.Module("roi.service",
	fx.Provide(service.NewService),
)
