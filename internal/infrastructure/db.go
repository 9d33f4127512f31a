package infrastructure

import (
	"fmt"

	"Fundbridge/config"
	"Fundbridge/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg)),
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	if cfg.Database.Driver == "sqlite" {
		// Um unico escritor evita SQLITE_BUSY dentro das transacoes de aceite.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("database", cfg.Database.DBName).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.IsDevelopment() && cfg.App.LogLevel == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// AutoMigrate cria ou atualiza as tabelas de todos os repositorios.
func AutoMigrate(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []struct {
		name  string
		model interface{}
	}{
		{name: "User", model: &userDB{}},
		{name: "HelpRequest", model: &helpRequestDB{}},
		{name: "Proposal", model: &proposalDB{}},
		{name: "Conversation", model: &conversationDB{}},
		{name: "Message", model: &messageDB{}},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity.model); err != nil {
			logger.Error().
				Err(err).
				Str("entity", entity.name).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}
