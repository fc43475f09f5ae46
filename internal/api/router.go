package api

import (
	"oficina-api/docs"
	"oficina-api/internal/api/handlers"
	"oficina-api/internal/models"
	"oficina-api/pkg/auth"
	"oficina-api/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Employee    *handlers.EmployeeHandler
	Client      *handlers.ClientHandler
	Assistant   *handlers.AssistantHandler
	Quote       *handlers.QuoteHandler
	Transaction *handlers.TransactionHandler
	Report      *handlers.ReportHandler
	Dashboard   *handlers.DashboardHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))
	managerOnly := middleware.RequireRole(models.RoleManager, appLogger)

	protected.Put("/me/password", h.Employee.ChangeOwnPassword)

	employees := protected.Group("/employees", managerOnly)
	employees.Get("", h.Employee.ListEmployees)
	employees.Post("", h.Auth.CreateEmployee)
	employees.Get("/:id", h.Employee.GetEmployee)
	employees.Put("/:id", h.Employee.EditEmployee)
	employees.Put("/:id/password", h.Employee.ResetPassword)

	roles := protected.Group("/roles")
	roles.Get("", h.Employee.ListRoles)
	roles.Post("", managerOnly, h.Employee.CreateRole)
	roles.Put("/:id", managerOnly, h.Employee.EditRole)
	roles.Delete("/:id", managerOnly, h.Employee.DeleteRole)

	clients := protected.Group("/clients")
	clients.Get("", h.Client.ListClients)
	clients.Post("", h.Client.CreateClient)
	clients.Get("/:id", h.Client.GetClient)
	clients.Put("/:id", h.Client.EditClient)

	vehicles := protected.Group("/vehicles")
	vehicles.Get("", h.Client.ListVehicles)
	vehicles.Post("", h.Client.CreateVehicle)
	vehicles.Get("/:id", h.Client.GetVehicle)
	vehicles.Put("/:id", h.Client.EditVehicle)

	assistant := protected.Group("/assistant")
	assistant.Get("/period", h.Assistant.ResolvePeriod)
	assistant.Post("/quotes", h.Assistant.SearchQuotes)
	assistant.Post("/transactions", h.Assistant.SearchTransactions)
	assistant.Post("/chat", h.Assistant.Chat)

	quotes := protected.Group("/quotes")
	quotes.Get("", h.Quote.ListQuotes)
	quotes.Post("", h.Quote.CreateQuote)
	quotes.Get("/:id", h.Quote.GetQuote)
	quotes.Put("/:id", h.Quote.EditQuote)
	quotes.Get("/:id/services", h.Quote.ListServices)
	quotes.Get("/:id/pdf", h.Quote.QuotePDF)
	quotes.Delete("/:id", h.Quote.DeleteQuote)

	transactions := protected.Group("/transactions")
	transactions.Get("", h.Transaction.ListTransactions)
	transactions.Post("", h.Transaction.CreateTransaction)
	transactions.Get("/:id", h.Transaction.GetTransaction)
	transactions.Put("/:id", h.Transaction.UpdateTransaction)
	transactions.Delete("/:id", h.Transaction.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.Get("", h.Transaction.ListCategories)
	categories.Post("", managerOnly, h.Transaction.CreateCategory)
	categories.Put("/:id", managerOnly, h.Transaction.UpdateCategory)
	categories.Delete("/:id", managerOnly, h.Transaction.DeleteCategory)

	reports := protected.Group("/reports")
	reports.Post("", h.Report.Summary)
	reports.Post("/pdf", h.Report.PDF)
	reports.Post("/xlsx", h.Report.XLSX)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", h.Dashboard.Stats)
	dashboard.Get("/activities", h.Dashboard.RecentActivities)

	return app
}
