package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/picpatch/PicPatch/app/controllers"
	"github.com/picpatch/PicPatch/internal/pkg/middleware"
)

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the versioned JSON API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// RegisterHandlers attaches the v1 routes to the given router group. The
// editor endpoints drive live editing sessions and require an
// authenticated browser session; responses are JSON throughout.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)

	editor := r.Group("/editor", middleware.RequireAPISessionAuth)
	editor.Post("/sessions", controllers.HandleAPIEditorOpen)
	editor.Get("/sessions/:sid", controllers.HandleAPIEditorState)
	editor.Delete("/sessions/:sid", controllers.HandleAPIEditorClose)

	editor.Post("/sessions/:sid/layers", controllers.HandleAPIEditorAddLayer)
	editor.Post("/sessions/:sid/layers/:index/move", controllers.HandleAPIEditorMoveLayer)
	editor.Post("/sessions/:sid/layers/:index/resize", controllers.HandleAPIEditorResizeLayer)
	editor.Post("/sessions/:sid/layers/:index/flip", controllers.HandleAPIEditorFlipLayer)
	editor.Post("/sessions/:sid/layers/:index/rotate", controllers.HandleAPIEditorRotateLayer)
	editor.Post("/sessions/:sid/layers/:index/opacity", controllers.HandleAPIEditorOpacity)
	editor.Post("/sessions/:sid/layers/:index/remove-background", controllers.HandleAPIEditorRemoveBackground)
	editor.Delete("/sessions/:sid/layers/:index", controllers.HandleAPIEditorRemoveLayer)

	editor.Post("/sessions/:sid/select", controllers.HandleAPIEditorSelect)
	editor.Post("/sessions/:sid/undo", controllers.HandleAPIEditorUndo)
	editor.Post("/sessions/:sid/redo", controllers.HandleAPIEditorRedo)

	editor.Post("/sessions/:sid/save", controllers.HandleAPIEditorSave)
	editor.Post("/sessions/:sid/post", controllers.HandleAPIEditorPost)
}
