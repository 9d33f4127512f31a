package fx

import (
	"context"
	"time"

	"Fundbridge/config"
	"Fundbridge/internal/middleware"

	"go.uber.org/fx"
)

// RateLimiters separa o limite das rotas públicas do limite por ator.
type RateLimiters struct {
	Public *middleware.RateLimiter
	Actor  *middleware.RateLimiter
}

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newRateLimiters,
	),
)

func newRateLimiters(lc fx.Lifecycle, cfg *config.Config) RateLimiters {
	limiters := RateLimiters{
		Public: middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute),
		Actor:  middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute),
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			limiters.Public.Stop()
			limiters.Actor.Stop()
			return nil
		},
	})
	return limiters
}
