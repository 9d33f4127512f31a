package main

import (
	"context"
	"fmt"
	"os"

	"Fundbridge/config"
	"Fundbridge/internal/infrastructure"
	"Fundbridge/internal/infrastructure/events"
	"Fundbridge/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Carrega dados de demonstração a partir de um arquivo YAML",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := LoadFixtures(file)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(),
					"fixtures válidas: usuários=%d pedidos=%d propostas=%d conversas=%d mensagens=%d\n",
					len(fixtures.Users), len(fixtures.HelpRequests), len(fixtures.Proposals),
					len(fixtures.Conversations), fixtures.messageCount(),
				)
				return nil
			}

			return run(cmd.Context(), cmd, fixtures)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "arquivo YAML com as fixtures")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apenas valida o arquivo, sem gravar")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, fixtures *Fixtures) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg)

	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	report, err := NewSeeder(db, publisher).Apply(ctx, fixtures)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.String())
	return nil
}
