package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/database"
)

// HandleUserProfile shows a user's public profile with their collages
func HandleUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByUsername(username)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "User not found"})
		return c.Redirect("/")
	}

	// A blocked viewer sees nothing
	if viewerID := currentUserID(c); viewerID != 0 {
		blocked, err := models.IsBlocked(database.GetDB(), user.ID, viewerID)
		if err == nil && blocked {
			flash.WithError(c, fiber.Map{"message": "User not found"})
			return c.Redirect("/")
		}
	}

	collages, err := repository.GetGlobalFactory().GetCollageRepository().
		GetByUserID(user.ID, 0, feedPageSize)
	if err != nil {
		log.Errorf("[Social] Failed to load collages for user %d: %v", user.ID, err)
		collages = []models.Collage{}
	}

	followers, _ := repository.GetGlobalFactory().GetUserRepository().GetFollowers(user.ID)
	following, _ := repository.GetGlobalFactory().GetUserRepository().GetFollowing(user.ID)

	isFollowing := false
	if viewerID := currentUserID(c); viewerID != 0 {
		for _, f := range followers {
			if f.ID == viewerID {
				isFollowing = true
				break
			}
		}
	}

	return c.Render("users/profile", viewData(c, fiber.Map{
		"Title":          user.Username,
		"ProfileUser":    user,
		"Collages":       collages,
		"FollowerCount":  len(followers),
		"FollowingCount": len(following),
		"IsFollowing":    isFollowing,
		"IsSelf":         user.ID == currentUserID(c),
	}))
}

// HandleFollowToggle follows or unfollows a user
func HandleFollowToggle(c *fiber.Ctx) error {
	username := c.Params("username")

	target, err := repository.GetGlobalFactory().GetUserRepository().GetByUsername(username)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "User not found"})
		return c.Redirect("/")
	}

	viewerID := currentUserID(c)
	if target.ID == viewerID {
		flash.WithError(c, fiber.Map{"message": "You cannot follow yourself"})
		return c.Redirect("/u/" + username)
	}

	// Following someone who blocked you is not allowed
	blocked, err := models.IsBlocked(database.GetDB(), target.ID, viewerID)
	if err == nil && blocked {
		flash.WithError(c, fiber.Map{"message": "User not found"})
		return c.Redirect("/")
	}

	if err := models.ToggleFollow(database.GetDB(), viewerID, target.ID); err != nil {
		log.Errorf("[Social] Failed to toggle follow %d -> %d: %v", viewerID, target.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to update follow state"})
		return c.Redirect("/u/" + username)
	}

	return c.Redirect("/u/" + username)
}

// HandleBlockToggle blocks or unblocks a user
func HandleBlockToggle(c *fiber.Ctx) error {
	username := c.Params("username")

	target, err := repository.GetGlobalFactory().GetUserRepository().GetByUsername(username)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "User not found"})
		return c.Redirect("/")
	}

	viewerID := currentUserID(c)
	if target.ID == viewerID {
		flash.WithError(c, fiber.Map{"message": "You cannot block yourself"})
		return c.Redirect("/u/" + username)
	}

	if err := models.ToggleBlock(database.GetDB(), viewerID, target.ID); err != nil {
		log.Errorf("[Social] Failed to toggle block %d -> %d: %v", viewerID, target.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to update block state"})
		return c.Redirect("/u/" + username)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Block state updated"})
	return c.Redirect("/")
}
