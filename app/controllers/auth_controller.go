package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/internal/pkg/database"
	"github.com/picpatch/PicPatch/internal/pkg/constants"
	"github.com/picpatch/PicPatch/internal/pkg/middleware"
	"github.com/picpatch/PicPatch/internal/pkg/session"
)

// HandleAuthLogin renders the login form and processes login submissions
func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		if isLoggedIn(c) {
			return c.Redirect(constants.BoardsRoute)
		}
		return c.Render("auth/login", viewData(c, fiber.Map{
			"Title": "Log in",
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	var user models.User
	result := database.GetDB().Where("username = ?", c.FormValue("username")).First(&user)
	if result.Error != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUsername, user.Username)
	sess.Set(middleware.SessionKeyIsAdmin, user.IsAdmin())

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	now := time.Now()
	user.LastLoginAt = &now
	database.GetDB().Model(&user).Update("last_login_at", now)

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back, " + user.Username,
	}

	return flash.WithSuccess(c, fm).Redirect(constants.BoardsRoute)
}

// HandleAuthRegister renders the registration form and creates new accounts
func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		if isLoggedIn(c) {
			return c.Redirect(constants.BoardsRoute)
		}
		return c.Render("auth/register", viewData(c, fiber.Map{
			"Title": "Create account",
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if password != c.FormValue("password_confirm") {
		fm["message"] = "Passwords do not match"

		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	user, err := models.CreateUser(username, email, password)
	if err != nil {
		fm["message"] = fmt.Sprintf("Invalid registration data: %s", err)

		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	if err := database.GetDB().Create(user).Error; err != nil {
		fm["message"] = "Username or email is already taken"

		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Account created, you can log in now",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.LoginRoute)
}

// HandleAuthLogout destroys the session
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		sess.Destroy()
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Logged out",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.PublicRoute)
}
