package handler

import (
	"github.com/labstack/echo/v4"
	echoswagger "github.com/swaggo/echo-swagger"
	"github.com/satboard/satboard-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	walletAuth *middleware.WalletAuthMiddleware,
	lnurlLimiter *middleware.RateLimiter,
	dashboardHandler *DashboardHandler,
	lnurlHandler *LnurlHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Dashboard CRUD (wallet-key protected)
	dashboards := api.Group("/dashboards")
	dashboards.Use(walletAuth.Authenticate())
	dashboards.GET("", dashboardHandler.List)
	dashboards.POST("", dashboardHandler.Create)
	dashboards.GET("/:id", dashboardHandler.Get)
	dashboards.PUT("/:id", dashboardHandler.Update)
	dashboards.DELETE("/:id", dashboardHandler.Delete)
	dashboards.POST("/:id/invoice", dashboardHandler.CreateInvoice)

	// LNURL protocol endpoints (public, rate limited)
	lnurl := api.Group("/lnurl")
	lnurl.Use(middleware.RateLimitMiddleware(lnurlLimiter))
	lnurl.GET("/pay/:id", lnurlHandler.Pay)
	lnurl.GET("/paycb/:id", lnurlHandler.PayCallback)
	lnurl.GET("/withdraw/:id", lnurlHandler.Withdraw)
	lnurl.GET("/withdrawcb/:id", lnurlHandler.WithdrawCallback)

	// Live view (public)
	api.GET("/ws/:id", wsHandler.HandleWS)

	// API documentation
	e.GET("/swagger/*", echoswagger.WrapHandler)
}
