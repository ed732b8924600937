package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codbbit.net/internal/adapter/crypto"
	"gitlab.com/codbbit.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codbbit.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codbbit.net/internal/adapter/redis/leaderboardport"
	"gitlab.com/codbbit.net/internal/adapter/salesforce"
	"gitlab.com/codbbit.net/internal/config"
	auth2 "gitlab.com/codbbit.net/internal/core/services/auth"
	"gitlab.com/codbbit.net/internal/core/services/catalog"
	"gitlab.com/codbbit.net/internal/core/services/connection"
	"gitlab.com/codbbit.net/internal/core/services/ranking"
	"gitlab.com/codbbit.net/internal/core/services/submission"
	logger2 "gitlab.com/codbbit.net/internal/global/logger"
	http2 "gitlab.com/codbbit.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting codbbit service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	userPort := userrepository.New(db, logger, "public")
	problemPort := problemrepository.New(db, logger, "public")
	leaderboardPort := leaderboardport.NewLeaderboardRepository(redisClient, logger)
	sfClient := salesforce.New(sysCfg.SalesforceConfig, sysCfg.SubmissionCfg, logger)

	// PRIMARY PORTS
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// SERVICES
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	connectionSvc := connection.NewConnectionService(userPort, sfClient, sfClient, sysCfg.SubmissionCfg, logger)
	problemSvc := catalog.NewProblemService(problemPort, logger)
	rankingSvc := ranking.NewRankingService(leaderboardPort, logger)
	submissionSvc := submission.NewSubmissionService(userPort, sfClient, leaderboardPort, connectionSvc, logger)

	serviceProvider := http2.NewServiceProvider(
		localAuth, connectionSvc, submissionSvc, problemSvc, rankingSvc, userPort, jwtProvider,
	)

	// SERVER
	httpServer := http2.NewServer(8082, "codbbit", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
