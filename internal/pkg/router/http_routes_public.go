package router

import (
	"github.com/picpatch/PicPatch/app/controllers"
	"github.com/picpatch/PicPatch/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public profiles and short share URLs
	app.Get("/u/:username", controllers.HandleUserProfile)
	app.Get("/c/:sharelink", controllers.HandleCollageView)
	app.Get("/c/:sharelink/share", controllers.HandleCollageShare)

	// Challenges are publicly browsable
	app.Get("/challenges", controllers.HandleChallenges)
	app.Get("/challenges/:id", controllers.HandleChallengeView)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}
