package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"oficina-api/internal/api"
	"oficina-api/internal/api/handlers"
	"oficina-api/internal/period"
	"oficina-api/internal/report"
	"oficina-api/internal/repository"
	"oficina-api/internal/service"
	"oficina-api/pkg/auth"
	"oficina-api/pkg/config"
	"oficina-api/pkg/logger"
	"oficina-api/pkg/postgres"

	"go.uber.org/zap"
)

// @title Oficina API
// @version 1.0
// @description Gestão de orçamentos, transações e relatórios financeiros da oficina

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting oficina API", zap.String("company", cfg.Company.Name))

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db, appLogger)
	quoteRepo := repository.NewQuoteRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	roleRepo := repository.NewRoleRepository(db, appLogger)
	clientRepo := repository.NewClientRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	resolver := period.New(logger.Named("period"))

	// The assistant runs without chat when no GigaChat key is configured.
	var chat service.ChatModel
	if cfg.GigaChat.APIKey != "" {
		llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.Company.Name, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
		chat = llmService
	} else {
		appLogger.Warn("GIGACHAT_API_KEY is empty, assistant chat disabled")
	}

	// Services
	authService := service.NewAuthService(employeeRepo, roleRepo, jwtManager, appLogger)
	employeeService := service.NewEmployeeService(employeeRepo, roleRepo, appLogger)
	roleService := service.NewRoleService(roleRepo, employeeRepo, appLogger)
	clientService := service.NewClientService(clientRepo, appLogger)
	assistantService := service.NewAssistantService(quoteRepo, txRepo, resolver, chat, appLogger)
	letterhead := report.Header{
		Company: cfg.Company.Name,
		Address: cfg.Company.Address,
		CNPJ:    cfg.Company.CNPJ,
		Phone:   cfg.Company.Phone,
	}
	quoteService := service.NewQuoteService(quoteRepo, letterhead, cfg.Company.Location(), appLogger)
	transactionService := service.NewTransactionService(txRepo, categoryRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	reportService := service.NewReportService(txRepo, categoryRepo, resolver, cfg.Company.Name, cfg.Company.Location(), appLogger)
	dashboardService := service.NewDashboardService(quoteRepo, txRepo, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		Employee:    handlers.NewEmployeeHandler(employeeService, roleService, appLogger),
		Client:      handlers.NewClientHandler(clientService, appLogger),
		Assistant:   handlers.NewAssistantHandler(assistantService, appLogger),
		Quote:       handlers.NewQuoteHandler(quoteService, appLogger),
		Transaction: handlers.NewTransactionHandler(transactionService, categoryService, appLogger),
		Report:      handlers.NewReportHandler(reportService, appLogger),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, appLogger),
	}, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
