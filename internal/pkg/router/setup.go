package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a set of routes on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install HttpRouter first so the session store and the global
	// UserContext middleware exist before the API routes that depend on
	// them are registered.
	setup(app, NewHttpRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
