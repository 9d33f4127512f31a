package fx

import (
	"os"

	"Fundbridge/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// AppModule reúne todos os módulos da aplicação
var AppModule = fx.Options(
	fx.WithLogger(newFxLogger),
	ConfigModule,
	InfrastructureModule,
	DomainModule,
	MiddlewareModule,
	RoutesModule,
	ServerModule,
)

// newFxLogger mostra o grafo de dependências só em desenvolvimento.
func newFxLogger(cfg *config.Config) fxevent.Logger {
	if cfg.IsDevelopment() {
		return &fxevent.ConsoleLogger{W: os.Stderr}
	}
	return fxevent.NopLogger
}
