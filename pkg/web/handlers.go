package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/jayamurugan-31/zara/pkg/hub"
	"github.com/jayamurugan-31/zara/pkg/intent"
)

// handleStatus returns the current session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(viewOf(s.zara.Session().Snapshot()))
}

// handleGetConversation returns the in-memory conversation log.
func (s *Server) handleGetConversation(c *fiber.Ctx) error {
	entries := s.zara.Log().Entries()
	views := make([]ConversationView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ConversationView{
			Time:    e.Timestamp.Format("15:04:05"),
			Role:    string(e.Role),
			Message: e.Message,
		})
	}
	return c.JSON(views)
}

// CommandRequest is the request body for a typed command.
type CommandRequest struct {
	Command string `json:"command"`
}

// handleCommand dispatches one typed command and returns the reply.
func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	res, err := s.zara.Dispatcher().Dispatch(c.Context(), req.Command)
	if errors.Is(err, intent.ErrEmptyInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "command must not be empty",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.broadcastNewEntries()

	return c.JSON(fiber.Map{
		"reply":       res.Text,
		"side_effect": res.SideEffect,
	})
}

// handleListenStart kicks off a single background voice capture.
func (s *Server) handleListenStart(c *fiber.Ctx) error {
	s.captureOnce()
	return c.JSON(fiber.Map{"listening": true})
}

// handleListenStop flips the listening flag off; a running mode loop
// notices on its next iteration.
func (s *Server) handleListenStop(c *fiber.Ctx) error {
	s.zara.Session().SetListening(false)
	return c.JSON(fiber.Map{"listening": false})
}

// handleClear empties the in-memory conversation. The on-disk audit
// log is untouched.
func (s *Server) handleClear(c *fiber.Ctx) error {
	s.zara.Log().Clear()

	s.sentMu.Lock()
	s.sent = 0
	s.sentMu.Unlock()

	return c.JSON(fiber.Map{"cleared": true})
}

// handleExport writes a JSON snapshot of the conversation and returns
// the created file name.
func (s *Server) handleExport(c *fiber.Ctx) error {
	dir := s.zara.Config().ExportDir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	path, err := s.zara.Log().Export(dir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"file": path})
}

// handleStatusWS streams session state changes. The current state is
// sent on connect.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	c.WriteJSON(viewOf(s.zara.Session().Snapshot()))
	hub.NewClient(s.statusHub, c).Run()
}

// handleConversationWS streams new conversation entries. The backlog is
// sent on connect.
func (s *Server) handleConversationWS(c *websocket.Conn) {
	for _, e := range s.zara.Log().Entries() {
		c.WriteJSON(ConversationView{
			Time:    e.Timestamp.Format("15:04:05"),
			Role:    string(e.Role),
			Message: e.Message,
		})
	}
	hub.NewClient(s.conversationHub, c).Run()
}
