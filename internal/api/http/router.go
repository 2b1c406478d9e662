package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	StaffTickets   *handlers.StaffTicketsHandler
	Reports        *handlers.ReportsHandler
	Assets         *handlers.AssetsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Get("/me", cfg.Auth.Me)

	// Requester surface. Staff open their own tickets here too.
	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/close", cfg.Tickets.CloseTicket)
	tickets.Post("/:id/reopen", cfg.Tickets.ReopenTicket)

	staff := app.Group("/staff/tickets", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	staff.Get("", cfg.StaffTickets.ListTickets)
	staff.Post("/attachments", cfg.StaffTickets.UploadAttachment)
	staff.Get("/attachments/url", cfg.StaffTickets.AttachmentURL)
	staff.Get("/:id", cfg.StaffTickets.GetTicket)
	staff.Post("/:id/assign", cfg.StaffTickets.AssignTicket)
	staff.Post("/:id/status", cfg.StaffTickets.ChangeStatus)
	staff.Post("/:id/priority", cfg.StaffTickets.Reprioritize)
	staff.Post("/:id/comments", cfg.StaffTickets.AddComment)
	staff.Get("/:id/audit", cfg.StaffTickets.AuditTrail)
	staff.Delete("/:id", cfg.StaffTickets.DeleteTicket)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleSupervisor, domain.RoleAuditor, domain.RoleAdmin))
	reports.Get("/tickets.csv", cfg.Reports.Tickets)
	reports.Get("/deleted-tickets.csv", cfg.Reports.DeletedTickets)
	reports.Get("/assets.csv", cfg.Reports.Assets)
	reports.Get("/audit-log.csv",
		auth.RequireRole(domain.RoleAuditor, domain.RoleAdmin), cfg.Reports.AuditLog)

	assets := app.Group("/assets", cfg.AuthMiddleware.Handle, auth.RequireAssetManager())
	assets.Post("", cfg.Assets.CreateAsset)
	assets.Get("", cfg.Assets.ListAssets)
	assets.Get("/:id", cfg.Assets.GetAsset)
	assets.Patch("/:id", cfg.Assets.UpdateAsset)
	assets.Post("/:id/assign", cfg.Assets.AssignAsset)
	assets.Get("/:id/label.png", cfg.Assets.QRLabel)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Post("/locations", cfg.Admin.CreateLocation)
	admin.Get("/locations", cfg.Admin.ListLocations)
	admin.Patch("/locations/:id", cfg.Admin.UpdateLocation)
	admin.Post("/profiles", cfg.Admin.CreateProfile)
	admin.Get("/profiles", cfg.Admin.ListProfiles)
	admin.Patch("/profiles/:id", cfg.Admin.UpdateProfile)
	admin.Put("/profiles/:id/locations", cfg.Admin.AssignLocations)
}
