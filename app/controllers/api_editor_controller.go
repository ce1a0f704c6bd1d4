package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
	"github.com/picpatch/PicPatch/internal/pkg/bgremoval"
	"github.com/picpatch/PicPatch/internal/pkg/collage"
	"github.com/picpatch/PicPatch/internal/pkg/database"
	"github.com/picpatch/PicPatch/internal/pkg/editor"
	"github.com/picpatch/PicPatch/internal/pkg/objectstore"
)

// The background remover is shared across all editor sessions. It needs
// both the removal API and the object store configured; when either is
// missing the editor still works, only remove-background requests fail.
var (
	removerOnce sync.Once
	remover     collage.BackgroundRemover
)

func backgroundRemover() collage.BackgroundRemover {
	removerOnce.Do(func() {
		cfg := bgremoval.LoadConfig()
		if cfg.APIKey == "" {
			log.Warn("[Editor] Background removal disabled, no API key configured")
			return
		}
		storeCfg, err := objectstore.LoadConfig()
		if err != nil {
			log.Warnf("[Editor] Background removal disabled, object store not configured: %v", err)
			return
		}
		store, err := objectstore.NewClient(storeCfg)
		if err != nil {
			log.Warnf("[Editor] Background removal disabled, object store unreachable: %v", err)
			return
		}
		remover = bgremoval.NewService(bgremoval.NewClient(cfg), store, objectstore.ProcessedImageKey)
	})
	return remover
}

// editorState is the JSON representation of a live session returned by
// every edit operation.
type editorState struct {
	SessionID string              `json:"session_id"`
	Layers    []collage.DraftItem `json:"layers"`
	Selection int                 `json:"selection"`
	CanUndo   bool                `json:"can_undo"`
	CanRedo   bool                `json:"can_redo"`
	DraftID   uint                `json:"draft_id,omitempty"`
	BoardID   uint                `json:"board_id,omitempty"`
}

func stateFor(s *editor.Session) editorState {
	return editorState{
		SessionID: s.ID,
		Layers:    collage.ToDraftItems(s.Editor.Current()),
		Selection: s.Editor.Selection(),
		CanUndo:   s.Editor.CanUndo(),
		CanRedo:   s.Editor.CanRedo(),
		DraftID:   s.DraftID,
		BoardID:   s.BoardID,
	}
}

// HandleAPIEditorOpen opens a new editing session. The body selects the
// starting point: a draft to resume, a board to start from, a published
// collage to remix, or nothing for a blank canvas.
func HandleAPIEditorOpen(c *fiber.Ctx) error {
	var req struct {
		DraftID          uint   `json:"draft_id"`
		BoardID          uint   `json:"board_id"`
		CollageShareLink string `json:"collage_share_link"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	userID := currentUserID(c)
	mgr := editor.GetManager()

	switch {
	case req.DraftID != 0:
		draft, err := repository.GetGlobalFactory().GetDraftRepository().GetByID(req.DraftID)
		if err != nil || draft.UserID != userID {
			return jsonError(c, fiber.StatusNotFound, "draft not found")
		}
		s := mgr.Open(userID, draft.Composition(), backgroundRemover())
		s.DraftID = draft.ID
		return c.Status(fiber.StatusCreated).JSON(stateFor(s))

	case req.BoardID != 0:
		board, err := repository.GetGlobalFactory().GetBoardRepository().GetByID(req.BoardID)
		if err != nil || board.UserID != userID {
			return jsonError(c, fiber.StatusNotFound, "board not found")
		}
		initial := collage.Composition{}
		var draftID uint
		if board.DraftID != nil {
			draft, err := repository.GetGlobalFactory().GetDraftRepository().GetByID(*board.DraftID)
			if err == nil {
				initial = draft.Composition()
				draftID = draft.ID
			}
		}
		s := mgr.Open(userID, initial, backgroundRemover())
		s.BoardID = board.ID
		s.DraftID = draftID
		return c.Status(fiber.StatusCreated).JSON(stateFor(s))

	case req.CollageShareLink != "":
		col, err := repository.GetGlobalFactory().GetCollageRepository().
			GetByShareLink(req.CollageShareLink)
		if err != nil {
			return jsonError(c, fiber.StatusNotFound, "collage not found")
		}
		// Remixing imports the published layers onto a fresh canvas with
		// their placement reset to defaults.
		s := mgr.Open(userID, collage.Composition{}, backgroundRemover())
		s.Editor.AddCollageLayers(col.Items)
		return c.Status(fiber.StatusCreated).JSON(stateFor(s))

	default:
		s := mgr.Open(userID, collage.Composition{}, backgroundRemover())
		return c.Status(fiber.StatusCreated).JSON(stateFor(s))
	}
}

// routeSession resolves the session route param for the current user
func routeSession(c *fiber.Ctx) (*editor.Session, error) {
	return editor.GetManager().Get(c.Params("sid"), currentUserID(c))
}

// HandleAPIEditorState returns the current state of a session
func HandleAPIEditorState(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorClose discards a session without saving
func HandleAPIEditorClose(c *fiber.Ctx) error {
	editor.GetManager().Close(c.Params("sid"), currentUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAPIEditorAddLayer adds a new layer from an image URL
func HandleAPIEditorAddLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.BodyParser(&req); err != nil || req.ImageURL == "" {
		return jsonError(c, fiber.StatusBadRequest, "an imageUrl is required")
	}

	s.Editor.AddLayer(req.ImageURL)
	return c.JSON(stateFor(s))
}

// HandleAPIEditorMoveLayer sets a layer's position
func HandleAPIEditorMoveLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := s.Editor.MoveLayer(index, req.X, req.Y); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorResizeLayer sets a layer's size, clamped to the allowed range
func HandleAPIEditorResizeLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := s.Editor.ResizeLayer(index, req.Width, req.Height); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorFlipLayer toggles a layer's horizontal flip
func HandleAPIEditorFlipLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	if _, err := s.Editor.FlipLayer(index); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorRotateLayer rotates a layer by one step
func HandleAPIEditorRotateLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	if _, err := s.Editor.RotateLayer(index); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorOpacity sets a layer's opacity
func HandleAPIEditorOpacity(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	var req struct {
		Opacity float64 `json:"opacity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := s.Editor.SetOpacity(index, req.Opacity); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorRemoveLayer deletes a layer; later layers shift down
func HandleAPIEditorRemoveLayer(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	if _, err := s.Editor.RemoveLayer(index); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorRemoveBackground runs background removal on a layer's
// image. This blocks on the external removal service; other edits on the
// same session proceed meanwhile.
func HandleAPIEditorRemoveBackground(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid layer index")
	}

	if _, err := s.Editor.RemoveBackground(c.Context(), index); err != nil {
		switch {
		case errors.Is(err, collage.ErrNoRemover):
			return jsonError(c, fiber.StatusServiceUnavailable, "background removal is not configured")
		case errors.Is(err, collage.ErrLayerChanged):
			return jsonError(c, fiber.StatusConflict, "layer changed while background removal was running")
		case errors.Is(err, collage.ErrNoImage):
			return jsonError(c, fiber.StatusUnprocessableEntity, "layer has no image")
		case errors.Is(err, collage.ErrLayerNotFound):
			return jsonError(c, fiber.StatusNotFound, "no layer at index")
		default:
			log.Errorf("[Editor] Background removal failed for session %s: %v", s.ID, err)
			return jsonError(c, fiber.StatusBadGateway, "background removal failed")
		}
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorSelect sets or clears the layer selection
func HandleAPIEditorSelect(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Index == collage.NoSelection {
		s.Editor.Deselect()
	} else if err := s.Editor.Select(req.Index); err != nil {
		return editorOpError(c, err)
	}
	return c.JSON(stateFor(s))
}

// HandleAPIEditorUndo steps the session back one edit
func HandleAPIEditorUndo(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	s.Editor.Undo()
	return c.JSON(stateFor(s))
}

// HandleAPIEditorRedo reapplies the most recently undone edit
func HandleAPIEditorRedo(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	s.Editor.Redo()
	return c.JSON(stateFor(s))
}

// HandleAPIEditorSave persists the session as a draft, creating one on
// first save and overwriting it afterwards. A board the session was
// opened from gets the draft linked.
func HandleAPIEditorSave(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	var req struct {
		Name string `json:"name"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.Name == "" {
		req.Name = "Untitled draft"
	}

	drafts := repository.GetGlobalFactory().GetDraftRepository()

	if s.DraftID != 0 {
		draft, err := drafts.GetByID(s.DraftID)
		if err == nil && draft.UserID == s.UserID {
			draft.Name = req.Name
			draft.SetComposition(s.Editor.Current())
			if err := drafts.Update(draft); err != nil {
				log.Errorf("[Editor] Failed to update draft %d: %v", draft.ID, err)
				return jsonError(c, fiber.StatusInternalServerError, "failed to save the draft")
			}
			return c.JSON(fiber.Map{"draft_id": draft.ID})
		}
		// Draft vanished underneath the session, fall through and recreate
		s.DraftID = 0
	}

	draft := models.Draft{
		UserID: s.UserID,
		Name:   req.Name,
	}
	draft.SetComposition(s.Editor.Current())

	if err := drafts.Create(&draft); err != nil {
		log.Errorf("[Editor] Failed to create draft: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to save the draft")
	}
	s.DraftID = draft.ID

	if s.BoardID != 0 {
		board, err := repository.GetGlobalFactory().GetBoardRepository().GetByID(s.BoardID)
		if err == nil && board.UserID == s.UserID {
			if err := board.LinkDraft(database.GetDB(), draft.ID); err != nil {
				log.Warnf("[Editor] Failed to link draft %d to board %d: %v", draft.ID, board.ID, err)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draft_id": draft.ID})
}

// HandleAPIEditorPost publishes the session as a collage. The collage is
// written first; only then is the backing draft deleted and unlinked, so
// a failure between the two steps leaves a stray draft rather than a lost
// composition.
func HandleAPIEditorPost(c *fiber.Ctx) error {
	s, err := routeSession(c)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "session not found")
	}

	var req struct {
		Name string `json:"name"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.Name == "" {
		req.Name = "Untitled collage"
	}

	current := s.Editor.Current()
	if len(current) == 0 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "cannot post an empty collage")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(s.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve the posting user")
	}

	col := models.Collage{
		UserID:           s.UserID,
		Name:             req.Name,
		Items:            collage.ToCollageItems(current),
		ContainerWidth:   models.DefaultContainerWidth,
		ContainerHeight:  models.DefaultContainerHeight,
		PostedByUsername: user.Username,
	}

	if err := repository.GetGlobalFactory().GetCollageRepository().Create(&col); err != nil {
		log.Errorf("[Editor] Failed to publish collage: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to publish the collage")
	}

	// The published record exists; everything below is cleanup.
	if s.BoardID != 0 {
		board, err := repository.GetGlobalFactory().GetBoardRepository().GetByID(s.BoardID)
		if err == nil && board.UserID == s.UserID {
			if err := repository.GetGlobalFactory().GetBoardRepository().AddCollage(board.ID, col.ID); err != nil {
				log.Warnf("[Editor] Failed to attach collage %d to board %d: %v", col.ID, board.ID, err)
			}
			if err := board.UnlinkDraft(database.GetDB()); err != nil {
				log.Warnf("[Editor] Failed to unlink draft from board %d: %v", board.ID, err)
			}
		}
	}
	if s.DraftID != 0 {
		if err := repository.GetGlobalFactory().GetDraftRepository().Delete(s.DraftID); err != nil {
			log.Warnf("[Editor] Failed to delete draft %d after publishing: %v", s.DraftID, err)
		}
	}

	editor.GetManager().Close(s.ID, s.UserID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"collage_id": col.ID,
		"share_link": col.ShareLink,
	})
}

// editorOpError maps editor errors onto HTTP statuses
func editorOpError(c *fiber.Ctx, err error) error {
	if errors.Is(err, collage.ErrLayerNotFound) {
		return jsonError(c, fiber.StatusNotFound, "no layer at index")
	}
	return jsonError(c, fiber.StatusBadRequest, err.Error())
}
