package fx

import (
	"context"
	"errors"
	"net/http"

	"Fundbridge/config"
	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/metrics"
	"Fundbridge/internal/routes"

	docs "Fundbridge/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	return router
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	limiters RateLimiters,
	userChecker *shared.UserCheckerService,
	m *metrics.Metrics,
) {
	opts := routes.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PublicLimiter:  limiters.Public,
		ActorLimiter:   limiters.Actor,
		ActorChecker:   userChecker,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = m
		opts.MetricsPath = cfg.Metrics.Path
	}
	routes.Register(router, handler, opts)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
