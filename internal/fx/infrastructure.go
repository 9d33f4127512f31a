package fx

import (
	"context"

	"Fundbridge/config"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/infrastructure"
	"Fundbridge/internal/infrastructure/events"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/metrics"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newHelpRequestRepository,
		newProposalRepository,
		newMessagingStore,
		newEventPublisher,
		metrics.New,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logger.Info().Msg("Fechando conexão com banco de dados")
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newHelpRequestRepository(db *gorm.DB) *infrastructure.HelpRequestRepository {
	return &infrastructure.HelpRequestRepository{DB: db}
}

func newProposalRepository(db *gorm.DB) *infrastructure.ProposalRepository {
	return &infrastructure.ProposalRepository{DB: db}
}

func newMessagingStore(cfg *config.Config, db *gorm.DB) messaging.Store {
	if cfg.Store.MessagingDriver == "memory" {
		logger.Warn().Msg("Chat usando armazenamento em memória; mensagens serão perdidas ao reiniciar")
		return messaging.NewMemoryStore()
	}
	return &infrastructure.MessagingStore{DB: db}
}

func newEventPublisher(lc fx.Lifecycle, cfg *config.Config) (events.Publisher, error) {
	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher, nil
}
