package app

import (
	"database/sql"

	"leavehr/internal/balance"
	"leavehr/internal/department"
	"leavehr/internal/employee"
	"leavehr/internal/entity"
	"leavehr/internal/holiday"
	"leavehr/internal/leave"
	"leavehr/internal/messaging/kafka"
	"leavehr/internal/policy"
	"leavehr/internal/report"
	"leavehr/internal/salary"
	"leavehr/internal/shared/counter"
	"leavehr/internal/staffing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	entityRepo := entity.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	staffingRepo := staffing.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	entityService := entity.NewService(entityRepo)
	departmentService := department.NewService(departmentRepo)
	policyService := policy.NewService(db, policyRepo)
	holidayService := holiday.NewService(holidayRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo)
	salaryService := salary.NewService(salaryRepo)
	balanceService := balance.NewService(
		balanceRepo,
		employeeService,
		policyService,
		holidayService,
		leave.NewApprovedSource(leaveRepo),
		outboxRepo,
		rdb,
	)
	staffingService := staffing.NewService(staffingRepo, employeeRepo, leaveRepo)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		policyService,
		holidayService,
		employeeService,
		balanceService,
		staffingService,
		outboxRepo,
	)
	reportService := report.NewService(
		employeeService,
		policyService,
		holidayService,
		leaveRepo,
		salaryService,
	)

	// --- Handlers ---
	entityHandler := entity.NewHandler(entityService)
	departmentHandler := department.NewHandler(departmentService)
	policyHandler := policy.NewHandler(policyService)
	holidayHandler := holiday.NewHandler(holidayService)
	employeeHandler := employee.NewHandler(employeeService)
	salaryHandler := salary.NewHandler(salaryService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	staffingHandler := staffing.NewHandler(staffingService)
	reportHandler := report.NewHandlerWithRedis(reportService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		entity.RegisterRoutes(api, entityHandler)
		department.RegisterRoutes(api, departmentHandler)
		policy.RegisterRoutes(api, policyHandler)
		holiday.RegisterRoutes(api, holidayHandler)
		employee.RegisterRoutes(api, employeeHandler)
		salary.RegisterRoutes(api, salaryHandler)
		balance.RegisterRoutes(api, balanceHandler)
		leave.RegisterRoutes(api, leaveHandler)
		staffing.RegisterRoutes(api, staffingHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
