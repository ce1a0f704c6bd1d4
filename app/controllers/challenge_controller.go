package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/constants"
)

// HandleChallenges lists the currently open collage challenges
func HandleChallenges(c *fiber.Ctx) error {
	challenges, err := repository.GetGlobalFactory().GetChallengeRepository().GetOpen()
	if err != nil {
		log.Errorf("[Challenge] Failed to load challenges: %v", err)
		challenges = []models.Challenge{}
	}

	return c.Render("challenges/index", viewData(c, fiber.Map{
		"Title":      "Challenges",
		"Challenges": challenges,
	}))
}

// HandleChallengeView shows one challenge with its submissions
func HandleChallengeView(c *fiber.Ctx) error {
	challengeID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid challenge ID"})
		return c.Redirect(constants.ChallengesRoute)
	}

	challenge, err := repository.GetGlobalFactory().GetChallengeRepository().GetByID(challengeID)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Challenge not found"})
		return c.Redirect(constants.ChallengesRoute)
	}

	submissions, err := repository.GetGlobalFactory().GetChallengeRepository().GetSubmissions(challengeID)
	if err != nil {
		log.Errorf("[Challenge] Failed to load submissions for challenge %d: %v", challengeID, err)
		submissions = []models.ChallengeSubmission{}
	}

	return c.Render("challenges/show", viewData(c, fiber.Map{
		"Title":       challenge.Title,
		"Challenge":   challenge,
		"Submissions": submissions,
		"IsOpen":      challenge.IsOpen(),
	}))
}

// HandleChallengeSubmit enters one of the user's collages into a challenge
func HandleChallengeSubmit(c *fiber.Ctx) error {
	challengeID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid challenge ID"})
		return c.Redirect(constants.ChallengesRoute)
	}

	challenge, err := repository.GetGlobalFactory().GetChallengeRepository().GetByID(challengeID)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Challenge not found"})
		return c.Redirect(constants.ChallengesRoute)
	}

	redirect := "/challenges/" + c.Params("id")

	if !challenge.IsOpen() {
		flash.WithError(c, fiber.Map{"message": "This challenge is closed"})
		return c.Redirect(redirect)
	}

	collageID, err := strconv.ParseUint(c.FormValue("collage_id"), 10, 32)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid collage"})
		return c.Redirect(redirect)
	}

	col, err := repository.GetGlobalFactory().GetCollageRepository().GetByID(uint(collageID))
	if err != nil || col.UserID != currentUserID(c) {
		flash.WithError(c, fiber.Map{"message": "You can only submit your own collages"})
		return c.Redirect(redirect)
	}

	already, err := repository.GetGlobalFactory().GetChallengeRepository().
		HasSubmitted(challengeID, col.ID)
	if err == nil && already {
		flash.WithError(c, fiber.Map{"message": "This collage was already submitted"})
		return c.Redirect(redirect)
	}

	submission := models.ChallengeSubmission{
		ChallengeID: challengeID,
		CollageID:   col.ID,
		UserID:      currentUserID(c),
	}

	if err := repository.GetGlobalFactory().GetChallengeRepository().Submit(&submission); err != nil {
		log.Errorf("[Challenge] Failed to submit collage %d to challenge %d: %v", col.ID, challengeID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to submit the collage"})
		return c.Redirect(redirect)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Collage submitted"})
	return c.Redirect(redirect)
}

// HandleChallengeCreate creates a new challenge (admin only)
func HandleChallengeCreate(c *fiber.Ctx) error {
	challenge := models.Challenge{
		CreatorID:   currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	if raw := c.FormValue("deadline"); raw != "" {
		deadline, err := time.Parse("2006-01-02", raw)
		if err != nil {
			flash.WithError(c, fiber.Map{"message": "Invalid deadline, expected YYYY-MM-DD"})
			return c.Redirect(constants.ChallengesRoute)
		}
		challenge.Deadline = &deadline
	}

	if err := validate.Struct(&challenge); err != nil {
		flash.WithError(c, fiber.Map{"message": "A challenge title is required"})
		return c.Redirect(constants.ChallengesRoute)
	}

	if err := repository.GetGlobalFactory().GetChallengeRepository().Create(&challenge); err != nil {
		log.Errorf("[Challenge] Failed to create challenge: %v", err)
		flash.WithError(c, fiber.Map{"message": "Failed to create the challenge"})
		return c.Redirect(constants.ChallengesRoute)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Challenge created"})
	return c.Redirect(constants.ChallengesRoute)
}
