package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/config"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/presentation/http/handler"
	"github.com/sangkips/scango-api/internal/presentation/http/middleware"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Store   *handler.StoreHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Staff   *handler.StaffHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	TerminalGuard   *service.TerminalGuard
	RateLimiter     *middleware.TerminalRateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)
		registerStoreRoutes(v1, h)

		// Customer app
		customer := v1.Group("")
		customer.Use(middleware.AuthMiddleware(deps.JWTManager), middleware.RequireCustomer())
		registerCustomerRoutes(customer, h, deps)

		// Staff terminals
		staff := v1.Group("/staff")
		staff.Use(
			middleware.AuthMiddleware(deps.JWTManager),
			middleware.RequireEmployee(),
			middleware.TerminalMiddleware(),
		)
		registerStaffRoutes(staff, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/otp/send", h.Auth.SendOTP)
		auth.POST("/otp/verify", h.Auth.VerifyOTP)
		auth.POST("/employee/login", h.Auth.EmployeeLogin)
	}
}

func registerStoreRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/stores", h.Store.List)
	v1.GET("/stores/nearest", h.Store.Nearest)
	v1.GET("/counters/optimal", h.Store.OptimalCounter)
}

func registerCustomerRoutes(customer *gin.RouterGroup, h *Handlers, deps *Deps) {
	customer.GET("/catalog/:barcode", h.Catalog.Resolve)

	cart := customer.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.PUT("/store", h.Cart.SelectStore)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:product_id", h.Cart.AdjustItem)
		cart.DELETE("", h.Cart.Clear)
	}

	customer.POST("/checkout",
		middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: deps.Logger,
		}),
		h.Order.Checkout,
	)

	orders := customer.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
	}
}

func registerStaffRoutes(staff *gin.RouterGroup, h *Handlers, deps *Deps) {
	staff.GET("/printer/status", h.Printer.GetStatus)

	// every scan is rate limited and serialised per terminal
	scans := staff.Group("")
	scans.Use(deps.RateLimiter.Middleware(), middleware.SingleScan(deps.TerminalGuard))
	{
		scans.POST("/lookup", h.Staff.Lookup)

		cashier := scans.Group("/cashier")
		cashier.Use(middleware.RequireRole(enum.EmployeeRoleCashier))
		{
			cashier.POST("/collect", h.Staff.CollectPayment)
			cashier.POST("/print", h.Printer.PrintSlip)
		}

		guard := scans.Group("/guard")
		guard.Use(middleware.RequireRole(enum.EmployeeRoleGuard))
		{
			guard.POST("/verify", h.Staff.VerifyExit)
		}
	}
}
