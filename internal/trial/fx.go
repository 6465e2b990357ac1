package trial

import (
	"github.com/markproof/portal/internal/trial/repository"
	"github.com/markproof/portal/internal/trial/service"
	"go.uber.org/fx"
)

var Module = fx.Module("trial",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
