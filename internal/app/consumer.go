package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leavehr/internal/balance"
	"leavehr/internal/employee"
	"leavehr/internal/events"
	"leavehr/internal/holiday"
	"leavehr/internal/leave"
	"leavehr/internal/messaging/kafka"
	"leavehr/internal/messaging/kafka/consumer"
	"leavehr/internal/policy"
	"leavehr/internal/salary"
	"leavehr/internal/shared/connection"
	"leavehr/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer subscribes to the employee lifecycle and employment
// change topics, seeding default salary rows and rebuilding leave
// balances respectively.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	salaryRepo := salary.NewRepository(gormDB)
	salaryService := salary.NewService(salaryRepo)

	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeService := employee.NewService(sqlDB, employeeRepo, counterRepo)

	policyRepo := policy.NewRepository(gormDB)
	policyService := policy.NewService(sqlDB, policyRepo)

	holidayRepo := holiday.NewRepository(gormDB)
	holidayService := holiday.NewService(holidayRepo, rdb)

	leaveRepo := leave.NewRepository(gormDB)

	balanceRepo := balance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	balanceService := balance.NewService(
		balanceRepo,
		employeeService,
		policyService,
		holidayService,
		leave.NewApprovedSource(leaveRepo),
		outboxRepo,
		rdb,
	)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "leavehr-employee-salary",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	employmentReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmploymentChangedTopic,
		GroupID:        "leavehr-balance-recalc",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer employmentReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, salaryService, logger)
	go consumer.ConsumeEmploymentChanged(ctx, employmentReader, balanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
