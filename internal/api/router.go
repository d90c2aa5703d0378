package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/api/handler"
	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/api/view"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/service"
	"github.com/tableside/restaurant-console/internal/infrastructure/backend"
	"github.com/tableside/restaurant-console/internal/infrastructure/config"
	redisdb "github.com/tableside/restaurant-console/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, client *backend.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// --- Session-scoped stores ---
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	carts := redisdb.NewCartStore(rdb, cfg.Session.TTL)
	wizards := redisdb.NewWizardStore(rdb)

	e.HTTPErrorHandler = NewHTTPErrorHandler(log, sessions, carts, wizards, cfg.Session.CookieName)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddleware("console"))
	e.Use(middleware.Session(sessions, cfg.Session.CookieName))

	// --- Services ---
	authService := service.NewAuthService(client, sessions, carts, wizards, cfg.Session.TTL, log)
	checkoutService := service.NewCheckoutService(client, carts, cfg.TaxRate, cfg.PublicURL, log)
	reservationService := service.NewReservationService(client, wizards, log)
	historyService := service.NewHistoryService(client, log)
	dashboardService := service.NewDashboardService(client, log)
	registry := handler.NewRegistry(client, log)

	// --- Handlers ---
	menuItems := backend.NewCollection[domain.MenuItem](client, domain.ResMenuItems)
	authHandler := handler.NewAuthHandler(authService, cfg.Session.CookieName)
	menuHandler := handler.NewMenuHandler(menuItems, carts)
	cartHandler := handler.NewCartHandler(carts, menuItems, checkoutService)
	checkoutHandler := handler.NewCheckoutHandler(carts, checkoutService)
	ordersHandler := handler.NewOrdersHandler(historyService, checkoutService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	consoleHandler := handler.NewConsoleHandler(registry)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, registry)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/menu") })
	e.GET("/menu", menuHandler.Menu)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/signup", authHandler.SignupPage)
	e.POST("/signup", authHandler.Signup)
	e.GET("/staff/login", authHandler.StaffLoginPage)
	e.POST("/staff/login", authHandler.StaffLogin)
	e.POST("/logout", authHandler.Logout)

	e.StaticFS("/static", view.Static())

	// --- Customer routes ---
	customer := e.Group("", middleware.RequireCustomer)
	customer.GET("/cart", cartHandler.Cart)
	customer.POST("/cart/add", cartHandler.Add)
	customer.POST("/cart/update", cartHandler.Update)
	customer.POST("/cart/remove", cartHandler.Remove)
	customer.POST("/cart/clear", cartHandler.Clear)
	customer.GET("/checkout", checkoutHandler.Page)
	customer.POST("/checkout/place", checkoutHandler.Place)
	customer.GET("/orders/confirmation", ordersHandler.Confirmation)
	customer.GET("/orders/receipt.png", ordersHandler.ReceiptPNG)
	customer.GET("/my-orders", ordersHandler.MyOrders)
	customer.GET("/reservations/new", reservationHandler.Wizard)
	customer.POST("/reservations/date", reservationHandler.SelectDate)
	customer.POST("/reservations/time", reservationHandler.SelectTime)
	customer.POST("/reservations/party", reservationHandler.SetPartySize)
	customer.POST("/reservations/table", reservationHandler.SelectTable)
	customer.POST("/reservations/next", reservationHandler.Next)
	customer.POST("/reservations/back", reservationHandler.Back)
	customer.POST("/reservations/confirm", reservationHandler.Confirm)
	customer.GET("/my-reservations", reservationHandler.Mine)
	customer.POST("/my-reservations/cancel", reservationHandler.Cancel)

	// --- Staff routes ---
	staff := e.Group("/console", middleware.RequireStaff)
	staff.GET("", dashboardHandler.Dashboard)
	staff.GET("/:resource", consoleHandler.List)
	staff.GET("/:resource/new", consoleHandler.NewForm)
	staff.POST("/:resource", consoleHandler.Create)
	staff.GET("/:resource/:id/edit", consoleHandler.EditForm)
	staff.POST("/:resource/:id", consoleHandler.Update)
	staff.POST("/:resource/:id/delete", consoleHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb, client)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}

// requestLogger emits one structured line per request through the shared
// zerolog logger.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error()
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Err(v.Error).
				Msg("request")
			return nil
		},
	})
}
