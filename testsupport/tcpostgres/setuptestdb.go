//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tanklog/mtreplay-service-go/pkg/db/migrate"
	database "github.com/tanklog/mtreplay-service-go/pkg/db/postgres"
)

// create a pg connection pool for the mtreplay testdatabase
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("mtreplay-service-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}

	pool := database.InitWithUrl(dbUrl)
	return pool
}

// connects to an already running database named by TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	dbUrl := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}
	return database.InitWithUrl(dbUrl)
}

func ClearTankTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from tank")
}

func ClearAchievementTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from achievement")
}

func ClearUnsupportedReplayTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from unsupported_replay")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearUnsupportedReplayTable(pool)
	ClearAchievementTable(pool)
	ClearTankTable(pool)
}
