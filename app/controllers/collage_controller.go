package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/database"
	"github.com/picpatch/PicPatch/internal/pkg/metrics/counter"
	"github.com/picpatch/PicPatch/internal/pkg/usercontext"
)

const feedPageSize = 24

// HandleCollageFeed shows the public feed of recently published collages
func HandleCollageFeed(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * feedPageSize

	collages, err := repository.GetGlobalFactory().GetCollageRepository().
		GetFeed(currentUserID(c), offset, feedPageSize)
	if err != nil {
		log.Errorf("[Collage] Failed to load feed: %v", err)
		collages = []models.Collage{}
	}

	return c.Render("collages/index", viewData(c, fiber.Map{
		"Title":    "Feed",
		"Collages": collages,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
	}))
}

// HandleCollageView shows one published collage by its share link
func HandleCollageView(c *fiber.Ctx) error {
	shareLink := c.Params("sharelink")

	col, err := repository.GetGlobalFactory().GetCollageRepository().GetByShareLink(shareLink)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Collage not found"})
		return c.Redirect("/")
	}

	comments, err := repository.GetGlobalFactory().GetCollageRepository().GetComments(col.ID)
	if err != nil {
		log.Errorf("[Collage] Failed to load comments for collage %d: %v", col.ID, err)
		comments = []models.Comment{}
	}

	liked := false
	if userID := currentUserID(c); userID != 0 {
		liked, _ = models.HasLiked(database.GetDB(), userID, col.ID)
	}

	if err := counter.AddCollageView(col.ID); err != nil {
		log.Warnf("[Collage] Failed to buffer view count for collage %d: %v", col.ID, err)
	}

	return c.Render("collages/show", viewData(c, fiber.Map{
		"Title":    col.Name,
		"Collage":  col,
		"Comments": comments,
		"Liked":    liked,
		"IsOwner":  col.UserID == currentUserID(c),
	}))
}

// HandleCollageLike toggles the current user's like on a collage
func HandleCollageLike(c *fiber.Ctx) error {
	col, ok := routeCollage(c)
	if !ok {
		return c.Redirect("/")
	}

	liked, err := models.ToggleLike(database.GetDB(), currentUserID(c), col.ID)
	if err != nil {
		log.Errorf("[Collage] Failed to toggle like on collage %d: %v", col.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to save your like"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	if liked {
		flash.WithSuccess(c, fiber.Map{"message": "Liked"})
	} else {
		flash.WithSuccess(c, fiber.Map{"message": "Like removed"})
	}
	return c.Redirect("/c/" + col.ShareLink)
}

// HandleCollageComment adds a comment to a collage
func HandleCollageComment(c *fiber.Ctx) error {
	col, ok := routeCollage(c)
	if !ok {
		return c.Redirect("/")
	}

	comment := models.Comment{
		CollageID: col.ID,
		UserID:    currentUserID(c),
		Content:   c.FormValue("content"),
	}

	if err := validate.Struct(&comment); err != nil {
		flash.WithError(c, fiber.Map{"message": "A comment cannot be empty"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	if err := repository.GetGlobalFactory().GetCollageRepository().AddComment(&comment); err != nil {
		log.Errorf("[Collage] Failed to add comment on collage %d: %v", col.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to save your comment"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Comment added"})
	return c.Redirect("/c/" + col.ShareLink)
}

// HandleCollageReport files a report against a collage
func HandleCollageReport(c *fiber.Ctx) error {
	col, ok := routeCollage(c)
	if !ok {
		return c.Redirect("/")
	}

	var reporterID *uint
	if userID := currentUserID(c); userID != 0 {
		reporterID = &userID
	}

	report := models.CollageReport{
		CollageID:  col.ID,
		ReporterID: reporterID,
		Reason:     c.FormValue("reason"),
		Details:    c.FormValue("details"),
		Status:     models.ReportStatusOpen,
	}

	if err := validate.Struct(&report); err != nil {
		flash.WithError(c, fiber.Map{"message": "A report reason is required"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	if err := repository.GetGlobalFactory().GetCollageRepository().AddReport(&report); err != nil {
		log.Errorf("[Collage] Failed to report collage %d: %v", col.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to file the report"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Report filed, thank you"})
	return c.Redirect("/c/" + col.ShareLink)
}

// HandleCollageShare records a share of the collage and returns its link
func HandleCollageShare(c *fiber.Ctx) error {
	col, ok := routeCollage(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "collage not found")
	}

	if err := counter.AddCollageShare(col.ID); err != nil {
		log.Warnf("[Collage] Failed to buffer share count for collage %d: %v", col.ID, err)
	}

	return c.JSON(fiber.Map{
		"share_link": col.ShareLink,
		"url":        c.BaseURL() + "/c/" + col.ShareLink,
	})
}

// HandleCollageDelete removes a published collage. Owners can delete
// their own; admins can delete any.
func HandleCollageDelete(c *fiber.Ctx) error {
	col, ok := routeCollage(c)
	if !ok {
		return c.Redirect("/")
	}

	if col.UserID != currentUserID(c) && !usercontext.IsAdmin(c) {
		flash.WithError(c, fiber.Map{"message": "You cannot delete this collage"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	if err := repository.GetGlobalFactory().GetCollageRepository().Delete(col.ID); err != nil {
		log.Errorf("[Collage] Failed to delete collage %d: %v", col.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to delete the collage"})
		return c.Redirect("/c/" + col.ShareLink)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Collage deleted"})
	return c.Redirect("/")
}

// routeCollage loads the collage addressed by the share link route param
func routeCollage(c *fiber.Ctx) (*models.Collage, bool) {
	col, err := repository.GetGlobalFactory().GetCollageRepository().
		GetByShareLink(c.Params("sharelink"))
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Collage not found"})
		return nil, false
	}
	return col, true
}
