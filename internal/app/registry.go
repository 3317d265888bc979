package app

import (
	"context"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/compensation"
	"go-hrms/internal/department"
	"go-hrms/internal/designation"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeeauth"
	"go-hrms/internal/employeescope"
	"go-hrms/internal/face"
	"go-hrms/internal/feedback"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(ctx context.Context, router *gin.Engine, a *App) error {
	cfg, db, gormDB, rdb, logger := a.Config, a.DB, a.GormDB, a.Redis, a.Logger

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	feedbackRepo := feedback.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	scopeRepo := employeescope.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- External clients ---
	faceClient := face.NewClient(cfg.Face.BaseURL, cfg.Face.Timeout, logger)
	replies := feedback.NewReplyGenerator(cfg.Assistant, logger)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	scope := employeescope.NewResolver(scopeRepo, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, tokens, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, faceClient, cfg.Face.MinConfidence, logger)
	compensationService := compensation.NewService(db, compensationRepo, logger)
	departmentService := department.NewService(db, departmentRepo, logger)
	designationService := designation.NewService(db, designationRepo, rdb, logger)
	employeeAuthService := employeeauth.NewService(employeeRepo, tokens, faceClient, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	feedbackService := feedback.NewService(feedbackRepo, replies, logger)
	leaveService := leave.NewService(db, leaveRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, attendanceRepo, compensationService, outboxRepo, logger)

	if created, err := authService.SeedSuperadmin(ctx, cfg.Superadmin.Email, cfg.Superadmin.Password, cfg.Superadmin.Name); err != nil {
		return err
	} else if created {
		logger.Info("bootstrap superadmin created", zap.String("email", cfg.Superadmin.Email))
	}

	// --- Handlers ---
	secure := cfg.IsProduction()
	attendanceHandler := attendance.NewHandler(attendanceService, scope, logger)
	authHandler := auth.NewHandler(authService, secure, logger)
	compensationHandler := compensation.NewHandler(compensationService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	designationHandler := designation.NewHandler(designationService, logger)
	employeeAuthHandler := employeeauth.NewHandler(employeeAuthService, secure, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	feedbackHandler := feedback.NewHandler(feedbackService, scope, logger)
	leaveHandler := leave.NewHandler(leaveService, scope, logger)
	payrollHandler := payroll.NewHandler(payrollService, scope, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	// Verified with the key the token issuer signs with.
	authn := middleware.AuthMiddleware(cfg.JWT.Secret)
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authn, authHandler, rbacService, logger)
		employeeauth.RegisterRoutes(api, authn, employeeAuthHandler, logger)
		attendance.RegisterRoutes(api, authn, attendanceHandler, rbacService, cfg.Face.KioskKey, logger)
		compensation.RegisterRoutes(api, authn, compensationHandler, rbacService, rdb, logger)
		department.RegisterRoutes(api, authn, departmentHandler, rbacService, logger)
		designation.RegisterRoutes(api, authn, designationHandler, rbacService, logger)
		employee.RegisterRoutes(api, authn, employeeHandler, rbacService, logger)
		leave.RegisterRoutes(api, authn, leaveHandler, rbacService, logger)
		payroll.RegisterRoutes(api, authn, payrollHandler, rbacService, rdb, logger)
		rbac.RegisterRoutes(api, authn, rbacHandler, logger)

		me := api.Group("/me")
		me.Use(authn)
		me.Use(middleware.RoleMiddleware(domain.RoleEmployee))
		me.Use(middleware.ContextLogger(logger))
		{
			attendance.RegisterSelfRoutes(me, attendanceHandler)
			feedback.RegisterSelfRoutes(me, feedbackHandler)
			leave.RegisterSelfRoutes(me, leaveHandler)
			payroll.RegisterSelfRoutes(me, payrollHandler)
		}
	}

	return nil
}
