package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/constants"
)

// HandleDrafts lists the current user's drafts
func HandleDrafts(c *fiber.Ctx) error {
	userID := currentUserID(c)

	drafts, err := repository.GetGlobalFactory().GetDraftRepository().GetByUserID(userID)
	if err != nil {
		log.Errorf("[Draft] Failed to load drafts for user %d: %v", userID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to load your drafts"})
		drafts = []models.Draft{}
	}

	return c.Render("drafts/index", viewData(c, fiber.Map{
		"Title":  "My Drafts",
		"Drafts": drafts,
	}))
}

// HandleDraftView shows one draft
func HandleDraftView(c *fiber.Ctx) error {
	draft, ok := ownDraft(c)
	if !ok {
		return c.Redirect(constants.DraftsRoute)
	}

	return c.Render("drafts/show", viewData(c, fiber.Map{
		"Title": draft.Name,
		"Draft": draft,
	}))
}

// HandleDraftDelete discards a draft without publishing it
func HandleDraftDelete(c *fiber.Ctx) error {
	draft, ok := ownDraft(c)
	if !ok {
		return c.Redirect(constants.DraftsRoute)
	}

	if err := repository.GetGlobalFactory().GetDraftRepository().Delete(draft.ID); err != nil {
		log.Errorf("[Draft] Failed to delete draft %d: %v", draft.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to delete the draft"})
		return c.Redirect(constants.DraftsRoute)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Draft deleted"})
	return c.Redirect(constants.DraftsRoute)
}

// ownDraft loads the draft from the route and verifies ownership
func ownDraft(c *fiber.Ctx) (*models.Draft, bool) {
	draftID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid draft ID"})
		return nil, false
	}

	draft, err := repository.GetGlobalFactory().GetDraftRepository().GetByID(draftID)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Draft not found"})
		return nil, false
	}

	if draft.UserID != currentUserID(c) {
		flash.WithError(c, fiber.Map{"message": "Draft not found"})
		return nil, false
	}

	return draft, true
}
