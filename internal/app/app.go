package app

import (
	"context"
	"os"

	"leavehr/internal/balance"
	"leavehr/internal/middleware"
	"leavehr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	if err := registerModules(router, db, gormDB, rdb); err != nil {
		return err
	}

	// Evict balance snapshots invalidated by other replicas.
	go balance.ListenInvalidations(context.Background(), rdb, logger)

	return nil
}
