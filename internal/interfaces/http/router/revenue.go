package router

import (
	"github.com/rentalops/backend/internal/infrastructure/auth"
	"github.com/rentalops/backend/internal/interfaces/http/handler"
	"github.com/rentalops/backend/internal/interfaces/http/middleware"
)

// RevenueRoutes builds the /revenue group. Reads need revenue:read, configuration
// writes revenue:settings and payout state changes payout:manage.
func RevenueRoutes(h *handler.RevenueHandler, perms middleware.PermissionConfig) *DomainGroup {
	read := middleware.RequirePermission(perms, auth.PermissionRevenueRead)
	settings := middleware.RequirePermission(perms, auth.PermissionRevenueSettings)
	payouts := middleware.RequirePermission(perms, auth.PermissionPayoutManage)

	g := NewDomainGroup("revenue", "/revenue")

	g.GET("/settings", read, h.GetSettings)
	g.PUT("/settings", settings, h.UpdateSettings)
	g.GET("/overview", read, h.GetOverview)

	p := g.Group("payouts", "/payouts")
	p.GET("/owners", read, h.ListOwnerEarnings)
	p.GET("/property-managers", read, h.ListPropertyManagerEarnings)
	p.GET("/referral-agents", read, h.ListReferralAgentEarnings)
	p.GET("/retail-agents", read, h.ListRetailAgentEarnings)
	p.GET("/staff", read, h.ListStaffEarnings)
	p.POST("/mark-paid", payouts, h.MarkPaid)
	p.POST("/queue", payouts, h.QueuePayout)
	p.GET("/:type/export", read, h.ExportPayouts)
	p.POST("/:type/archive", read, h.ArchivePayouts)

	b := g.Group("bookings", "/bookings")
	b.GET("/:id/breakdown", read, h.GetBookingBreakdown)
	b.POST("/:id/commissions", payouts, h.PostBookingCommissions)
	b.PUT("/:id/override", settings, h.SaveBookingOverride)
	b.DELETE("/:id/override", settings, h.DeleteBookingOverride)

	pr := g.Group("properties", "/properties")
	pr.GET("/:id/defaults", read, h.GetPropertyDefaults)
	pr.PUT("/:id/override", settings, h.SavePropertyOverride)
	pr.DELETE("/:id/override", settings, h.DeletePropertyOverride)
	pr.PUT("/:id/channel-routing/:channel", settings, h.SaveChannelRouting)
	pr.PUT("/:id/expenses", settings, h.ReplaceDefaultExpenses)

	g.POST("/staff-wages", settings, h.CreateStaffWage)
	g.GET("/staff-wages", read, h.ListStaffWages)

	return g
}

// SystemRoutes builds the /system group
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo).
		GET("/ping", h.Ping)
}
