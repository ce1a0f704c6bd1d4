package controllers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/internal/pkg/usercontext"
)

var validate = validator.New()

// isLoggedIn reports whether the request carries an authenticated session
func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

// currentUserID returns the logged-in user's ID, or 0 for anonymous requests
func currentUserID(c *fiber.Ctx) uint {
	return usercontext.GetUserID(c)
}

// parseIDParam parses a numeric route parameter into a uint
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIndexParam parses a layer index route parameter
func parseIndexParam(c *fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}

// jsonError writes a JSON error response with the given status code
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// viewData builds the base bind map for HTML views: user context plus any
// flash message from the previous request
func viewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	ctx := usercontext.GetUserContext(c)
	data["IsLoggedIn"] = ctx.IsLoggedIn
	data["IsAdmin"] = ctx.IsAdmin
	data["Username"] = ctx.Username
	data["Flash"] = flash.Get(c)
	if token, ok := c.Locals("csrf").(string); ok {
		data["Csrf"] = token
	}
	return data
}
