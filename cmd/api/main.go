package main

import (
	appfx "Fundbridge/internal/fx"

	"go.uber.org/fx"
)

// @title           Fundbridge API
// @version         1.0
// @description     Pedidos de ajuda, propostas de investimento e mentoria, progresso de captação e chat.
// @BasePath        /api
// @securityDefinitions.apikey ActorID
// @in header
// @name X-Actor-ID
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
