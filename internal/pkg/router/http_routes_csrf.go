package router

import (
	"strings"
	"time"

	"github.com/picpatch/PicPatch/app/controllers"
	"github.com/picpatch/PicPatch/internal/pkg/env"
	"github.com/picpatch/PicPatch/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/", controllers.HandleCollageFeed)

	group.Get("/login", controllers.HandleAuthLogin)
	group.Post("/login", controllers.HandleAuthLogin)
	group.Get("/register", controllers.HandleAuthRegister)
	group.Post("/register", controllers.HandleAuthRegister)

	// Boards
	group.Get("/boards", middleware.RequireAuth, controllers.HandleBoards)
	group.Post("/boards", middleware.RequireAuth, controllers.HandleBoardCreate)
	group.Get("/boards/:id", middleware.RequireAuth, controllers.HandleBoardView)
	group.Post("/boards/:id", middleware.RequireAuth, controllers.HandleBoardUpdate)
	group.Post("/boards/:id/delete", middleware.RequireAuth, controllers.HandleBoardDelete)
	group.Post("/boards/:id/pins", middleware.RequireAuth, controllers.HandleBoardAddPin)
	group.Post("/boards/:id/pins/:index/delete", middleware.RequireAuth, controllers.HandleBoardRemovePin)

	// Drafts
	group.Get("/drafts", middleware.RequireAuth, controllers.HandleDrafts)
	group.Get("/drafts/:id", middleware.RequireAuth, controllers.HandleDraftView)
	group.Post("/drafts/:id/delete", middleware.RequireAuth, controllers.HandleDraftDelete)

	// Collage interactions
	group.Post("/c/:sharelink/like", middleware.RequireAuth, controllers.HandleCollageLike)
	group.Post("/c/:sharelink/comments", middleware.RequireAuth, controllers.HandleCollageComment)
	group.Post("/c/:sharelink/report", controllers.HandleCollageReport)
	group.Post("/c/:sharelink/delete", middleware.RequireAuth, controllers.HandleCollageDelete)

	// Social graph
	group.Post("/u/:username/follow", middleware.RequireAuth, controllers.HandleFollowToggle)
	group.Post("/u/:username/block", middleware.RequireAuth, controllers.HandleBlockToggle)

	// Challenge submissions
	group.Post("/challenges/:id/submit", middleware.RequireAuth, controllers.HandleChallengeSubmit)
}
