//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/Bullke/DFL---HTL/internal/config"
	"github.com/Bullke/DFL---HTL/internal/sim"
	"github.com/Bullke/DFL---HTL/internal/threading/monitoring"
	"github.com/google/wire"
)

func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideRegistry,
		ProvideLoader,
		ProvidePool,
		ProvideOptions,
		monitoring.NewPerformanceMonitor,
		sim.NewRunner,
		NewApp,
	)
	return nil, nil, nil
}
