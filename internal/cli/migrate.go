package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quiz-game-app/internal/config"
	"quiz-game-app/internal/infra/file"
	"quiz-game-app/internal/infra/postgres"
	pgmigrations "quiz-game-app/internal/infra/postgres/migrations"
	"quiz-game-app/internal/logging"
)

// NewMigrateCmd applies database migrations and optionally seeds the
// questions table from a bank file.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seedPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			if seedPath == "" {
				return nil
			}
			return seedQuestions(cmd.Context(), cfg, seedPath)
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "load questions from this JSON/YAML bank into postgres")
	return cmd
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Info().Msg("no new migrations")
		return nil
	}
	logger.Info().Str("group", group.String()).Msg("migrations applied")
	return nil
}

func seedQuestions(ctx context.Context, cfg config.Config, path string) error {
	bank, err := file.NewQuestionLoader(path).LoadQuestions(ctx)
	if err != nil {
		return err
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	if err := postgres.SeedQuestions(ctx, pool, bank); err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	logger.Info().Int("questions", len(bank)).Msg("questions seeded")
	return nil
}
