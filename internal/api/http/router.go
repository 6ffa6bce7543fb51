package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atlasboard/tracker-service/internal/api/http/handlers"
	"github.com/atlasboard/tracker-service/internal/auth"
	"github.com/atlasboard/tracker-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Teams          *handlers.TeamsHandler
	Projects       *handlers.ProjectsHandler
	Epics          *handlers.EpicsHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Statuses       *handlers.StatusesHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	app.Post("/login", cfg.Auth.Login)
	app.Post("/users", cfg.Users.Create)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/users", cfg.Users.List)
	protected.Get("/users/:id", cfg.Users.Get)
	protected.Patch("/users/:id", cfg.Users.Update)
	protected.Delete("/users/:id", cfg.Users.Delete)

	protected.Post("/teams", cfg.Teams.Create)
	protected.Get("/teams", cfg.Teams.List)
	protected.Get("/teams/:slug", cfg.Teams.Get)
	protected.Patch("/teams/:slug", cfg.Teams.Update)
	protected.Delete("/teams/:slug", cfg.Teams.Delete)
	protected.Delete("/teams/:slug/members/:username", cfg.Teams.RemoveMember)

	protected.Post("/projects", cfg.Projects.Create)
	protected.Get("/projects", cfg.Projects.List)
	protected.Get("/projects/:slug", cfg.Projects.Get)
	protected.Patch("/projects/:slug", cfg.Projects.Update)
	protected.Delete("/projects/:slug", cfg.Projects.Delete)
	protected.Get("/projects/:slug/epics", cfg.Epics.ListByProject)

	protected.Post("/epics", cfg.Epics.Create)
	protected.Get("/epics", cfg.Epics.List)
	protected.Get("/epics/:id", cfg.Epics.Get)
	protected.Patch("/epics/:id", cfg.Epics.Update)
	protected.Delete("/epics/:id", cfg.Epics.Delete)
	protected.Get("/epics/:id/tickets", cfg.Tickets.ListByEpic)
	protected.Get("/epics/:id/comments", cfg.Comments.ListByEpic)
	protected.Get("/epics/:id/summary", cfg.Epics.Summary)

	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Patch("/tickets/:id", cfg.Tickets.Update)
	protected.Delete("/tickets/:id", cfg.Tickets.Delete)
	protected.Get("/tickets/:id/comments", cfg.Comments.ListByTicket)
	protected.Get("/tickets/:id/summary", cfg.Tickets.Summary)

	protected.Post("/comments", cfg.Comments.Create)
	protected.Get("/comments", cfg.Comments.List)
	protected.Get("/comments/:id", cfg.Comments.Get)
	protected.Patch("/comments/:id", cfg.Comments.Update)
	protected.Delete("/comments/:id", cfg.Comments.Delete)

	protected.Get("/status", cfg.Statuses.List)
	protected.Post("/status", cfg.Statuses.Create)
	protected.Delete("/status/:id", cfg.Statuses.Delete)
}
