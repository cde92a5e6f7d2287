package catalog

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/config"
	"github.com/tanklog/mtreplay-service-go/pkg/db/postgres"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	achievementrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/achievement"
	tankrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/tank"
	"github.com/tanklog/mtreplay-service-go/pkg/utils"
)

func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "commands for maintaining the tank and achievement catalogs",
	}
	cmd.AddCommand(newImportTanksCmd())
	cmd.AddCommand(newImportAchievementsCmd())
	return cmd
}

func newImportTanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-tanks <yaml-file>",
		Short: "imports tank catalog entries from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importTanks(args[0])
		},
	}
}

func newImportAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-achievements <yaml-file>",
		Short: "imports achievement catalog entries from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importAchievements(args[0])
		},
	}
}

func importTanks(fileName string) error {
	var entries []model.Tank
	if err := readYaml(fileName, &entries); err != nil {
		return err
	}
	pool := connectDb()
	defer postgres.CloseDb()

	ctx := context.Background()
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i := range entries {
			if err := tankrepos.Create(ctx, tx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("tank catalog imported",
		log.String("file", fileName),
		log.Int("entries", len(entries)))
	return nil
}

func importAchievements(fileName string) error {
	var entries []model.Achievement
	if err := readYaml(fileName, &entries); err != nil {
		return err
	}
	pool := connectDb()
	defer postgres.CloseDb()

	ctx := context.Background()
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i := range entries {
			if err := achievementrepos.Create(ctx, tx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("achievement catalog imported",
		log.String("file", fileName),
		log.Int("entries", len(entries)))
	return nil
}

func readYaml(fileName string, target any) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, target)
}

func connectDb() *pgxpool.Pool {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}
	return postgres.InitWithUrl(config.DB)
}
