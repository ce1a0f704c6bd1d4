package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/constants"
	"github.com/picpatch/PicPatch/internal/pkg/database"
	"github.com/picpatch/PicPatch/internal/pkg/metrics/counter"
)

// HandleBoards lists the current user's boards
func HandleBoards(c *fiber.Ctx) error {
	userID := currentUserID(c)

	boards, err := repository.GetGlobalFactory().GetBoardRepository().GetByUserID(userID)
	if err != nil {
		log.Errorf("[Board] Failed to load boards for user %d: %v", userID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to load your boards"})
		boards = []models.Board{}
	}

	return c.Render("boards/index", viewData(c, fiber.Map{
		"Title":  "My Boards",
		"Boards": boards,
	}))
}

// HandleBoardCreate creates a new board from the submitted form
func HandleBoardCreate(c *fiber.Ctx) error {
	userID := currentUserID(c)

	board := models.Board{
		UserID:      userID,
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Pins:        []models.Pin{},
	}

	if err := validate.Struct(&board); err != nil {
		flash.WithError(c, fiber.Map{"message": "A board name is required"})
		return c.Redirect(constants.BoardsRoute)
	}

	if err := repository.GetGlobalFactory().GetBoardRepository().Create(&board); err != nil {
		log.Errorf("[Board] Failed to create board: %v", err)
		flash.WithError(c, fiber.Map{"message": "Failed to create the board"})
		return c.Redirect(constants.BoardsRoute)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Board created"})
	return c.Redirect(fmt.Sprintf("/boards/%d", board.ID))
}

// HandleBoardView shows a single board with its pins and collages
func HandleBoardView(c *fiber.Ctx) error {
	boardID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid board ID"})
		return c.Redirect(constants.BoardsRoute)
	}

	board, err := repository.GetGlobalFactory().GetBoardRepository().GetByID(boardID)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Board not found"})
		return c.Redirect(constants.BoardsRoute)
	}

	if board.UserID != currentUserID(c) {
		flash.WithError(c, fiber.Map{"message": "Board not found"})
		return c.Redirect(constants.BoardsRoute)
	}

	if err := counter.AddBoardView(board.ID); err != nil {
		log.Warnf("[Board] Failed to buffer view count for board %d: %v", board.ID, err)
	}

	return c.Render("boards/show", viewData(c, fiber.Map{
		"Title": board.Name,
		"Board": board,
	}))
}

// HandleBoardUpdate updates a board's name and description
func HandleBoardUpdate(c *fiber.Ctx) error {
	board, ok := ownBoard(c)
	if !ok {
		return c.Redirect(constants.BoardsRoute)
	}

	board.Name = c.FormValue("name", board.Name)
	board.Description = c.FormValue("description", board.Description)

	if err := validate.Struct(board); err != nil {
		flash.WithError(c, fiber.Map{"message": "A board name is required"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	if err := repository.GetGlobalFactory().GetBoardRepository().Update(board); err != nil {
		log.Errorf("[Board] Failed to update board %d: %v", board.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to update the board"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	flash.WithSuccess(c, fiber.Map{"message": "Board updated"})
	return c.Redirect("/boards/" + c.Params("id"))
}

// HandleBoardDelete deletes a board
func HandleBoardDelete(c *fiber.Ctx) error {
	board, ok := ownBoard(c)
	if !ok {
		return c.Redirect(constants.BoardsRoute)
	}

	if err := repository.GetGlobalFactory().GetBoardRepository().Delete(board.ID); err != nil {
		log.Errorf("[Board] Failed to delete board %d: %v", board.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to delete the board"})
		return c.Redirect(constants.BoardsRoute)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Board deleted"})
	return c.Redirect(constants.BoardsRoute)
}

// HandleBoardAddPin pins a source image onto a board
func HandleBoardAddPin(c *fiber.Ctx) error {
	board, ok := ownBoard(c)
	if !ok {
		return c.Redirect(constants.BoardsRoute)
	}

	imageURL := c.FormValue("image_url")
	if imageURL == "" {
		flash.WithError(c, fiber.Map{"message": "An image URL is required"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	pin := models.Pin{
		ImageURL: imageURL,
		Title:    c.FormValue("title"),
	}

	if err := board.AddPin(database.GetDB(), pin); err != nil {
		log.Errorf("[Board] Failed to pin image on board %d: %v", board.ID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to pin the image"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	flash.WithSuccess(c, fiber.Map{"message": "Image pinned"})
	return c.Redirect("/boards/" + c.Params("id"))
}

// HandleBoardRemovePin removes a pin from a board by index
func HandleBoardRemovePin(c *fiber.Ctx) error {
	board, ok := ownBoard(c)
	if !ok {
		return c.Redirect(constants.BoardsRoute)
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid pin index"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	if err := board.RemovePinAt(database.GetDB(), index); err != nil {
		flash.WithError(c, fiber.Map{"message": "Pin not found"})
		return c.Redirect("/boards/" + c.Params("id"))
	}

	flash.WithSuccess(c, fiber.Map{"message": "Pin removed"})
	return c.Redirect("/boards/" + c.Params("id"))
}

// ownBoard loads the board from the route and verifies ownership. On
// failure it sets a flash message and returns ok=false; the caller
// redirects.
func ownBoard(c *fiber.Ctx) (*models.Board, bool) {
	boardID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid board ID"})
		return nil, false
	}

	board, err := repository.GetGlobalFactory().GetBoardRepository().GetByID(boardID)
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Board not found"})
		return nil, false
	}

	if board.UserID != currentUserID(c) {
		flash.WithError(c, fiber.Map{"message": "Board not found"})
		return nil, false
	}

	return board, true
}
