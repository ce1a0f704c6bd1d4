package router

import (
	"github.com/picpatch/PicPatch/app/controllers"
	"github.com/picpatch/PicPatch/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)

	// Report moderation
	adminGroup.Get("/reports", controllers.HandleAdminReports)
	adminGroup.Post("/reports/:id/resolve", controllers.HandleAdminReportResolve)

	// Challenge management
	adminGroup.Post("/challenges/create", controllers.HandleChallengeCreate)
}
