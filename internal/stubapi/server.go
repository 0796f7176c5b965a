// Package stubapi is a small in-memory rendition of the dashboard backend,
// used by adminctl's local mode and by the end-to-end tests. It reproduces
// the API surface and the exact auth error contract the console depends on;
// it is not the production backend.
package stubapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

// Server wires the fixture store and JWT settings behind an echo instance.
type Server struct {
	st     *store
	secret string
	ttl    time.Duration
	logger zerolog.Logger
}

// New returns a ready-to-serve echo instance backed by seeded fixtures.
func New(jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *echo.Echo {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	s := &Server{st: seedStore(), secret: jwtSecret, ttl: tokenTTL, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", s.health)
	e.POST("/auth/login", s.login)

	api := e.Group("/api", auth(jwtSecret))
	staff := []string{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee}
	adminOnly := []string{domain.RoleAdmin}

	api.GET("/users", s.listUsers, requireRole(adminOnly...))
	api.GET("/customers", s.listCustomers, requireRole(staff...))
	api.GET("/customers/search", s.searchCustomers, requireRole(staff...))
	api.POST("/customers", s.createCustomer, requireRole(staff...))
	api.GET("/services", s.listServices, requireRole(staff...))
	api.GET("/discounts", s.listDiscounts, requireRole(staff...))
	api.GET("/expenses", s.listExpenses, requireRole(adminOnly...))
	api.GET("/orders", s.listOrders, requireRole(staff...))
	api.POST("/orders", s.createOrder, requireRole(staff...))
	api.PUT("/orders/:id", s.updateOrder, requireRole(staff...))
	api.DELETE("/orders/:id", s.deleteOrder, requireRole(staff...))
	api.POST("/orders/:id/services", s.addOrderService, requireRole(staff...))
	api.PUT("/orders/:id/services/:serviceId", s.updateOrderService, requireRole(staff...))
	api.DELETE("/orders/:id/services/:serviceId", s.removeOrderService, requireRole(staff...))
	api.GET("/orders/analytics/daily", s.dailyRevenue, requireRole(adminOnly...))
	api.GET("/analytics/financial", s.financialSummary, requireRole(adminOnly...))
	api.GET("/analytics/traffic", s.orderTraffic, requireRole(adminOnly...))

	return e
}
