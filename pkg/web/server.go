// Package web provides the real-time browser dashboard for Zara: REST
// endpoints for commands and the conversation log, plus websocket
// streams for live status and conversation updates.
package web

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/jayamurugan-31/zara/internal/log"
	"github.com/jayamurugan-31/zara/pkg/assistant"
	"github.com/jayamurugan-31/zara/pkg/hub"
)

// StateView is the session state as sent to the dashboard.
type StateView struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Status    string `json:"status"`
	Listening bool   `json:"listening"`
}

// ConversationView is one conversation entry as sent to the dashboard.
type ConversationView struct {
	Time    string `json:"time"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Server is the web dashboard server. It drives the same dispatcher as
// the terminal session.
type Server struct {
	app  *fiber.App
	zara *assistant.App
	port string

	// Hubs for websocket broadcast.
	statusHub       *hub.Hub
	conversationHub *hub.Hub

	// sent tracks how many log entries were already broadcast.
	sentMu sync.Mutex
	sent   int

	// capturing guards the background listen task.
	capturing atomic.Bool
}

// NewServer creates the dashboard server around an assembled assistant.
func NewServer(zara *assistant.App, port string) *Server {
	s := &Server{
		zara:            zara,
		port:            port,
		statusHub:       hub.New("status"),
		conversationHub: hub.New("conversation"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Zara Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development.
	app.Use(cors.New())

	// Static dashboard files.
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/conversation", s.handleGetConversation)
	api.Post("/command", s.handleCommand)
	api.Post("/listen/start", s.handleListenStart)
	api.Post("/listen/stop", s.handleListenStop)
	api.Post("/conversation/clear", s.handleClear)
	api.Post("/conversation/export", s.handleExport)

	// WebSocket upgrade middleware.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/conversation", websocket.New(s.handleConversationWS))

	s.app = app

	// Every session state change streams to the dashboard.
	zara.Session().OnChange(func(snap assistant.Snapshot) {
		s.statusHub.BroadcastJSON(viewOf(snap))
	})

	return s
}

// Start runs the hubs and serves HTTP. Blocks until Shutdown.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.conversationHub.Run()

	log.Info("web dashboard listening", "addr", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// viewOf converts a session snapshot to its dashboard representation.
func viewOf(snap assistant.Snapshot) StateView {
	return StateView{
		SessionID: snap.SessionID,
		Mode:      snap.Mode.String(),
		Status:    snap.Status.String(),
		Listening: snap.Listening,
	}
}

// broadcastNewEntries streams log entries added since the last call to
// every conversation subscriber.
func (s *Server) broadcastNewEntries() {
	entries := s.zara.Log().Entries()

	s.sentMu.Lock()
	defer s.sentMu.Unlock()

	if len(entries) < s.sent {
		// Log was cleared since the last broadcast.
		s.sent = 0
	}
	for _, e := range entries[s.sent:] {
		s.conversationHub.BroadcastJSON(ConversationView{
			Time:    e.Timestamp.Format("15:04:05"),
			Role:    string(e.Role),
			Message: e.Message,
		})
	}
	s.sent = len(entries)
}

// captureOnce listens for a single utterance in the background and
// dispatches it, mirroring one terminal request cycle. Only one capture
// runs at a time.
func (s *Server) captureOnce() {
	if !s.capturing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.capturing.Store(false)
		defer s.broadcastNewEntries()

		session := s.zara.Session()
		session.SetListening(true)

		listener := s.zara.Collaborators().Listener
		if listener == nil {
			session.SetListening(false)
			return
		}

		text, err := listener.Listen(context.Background())
		session.SetListening(false)
		if err != nil || text == "" {
			if err != nil {
				log.Warn("dashboard capture failed", "error", err)
			}
			return
		}

		if _, err := s.zara.Dispatcher().Dispatch(context.Background(), text); err != nil {
			log.Warn("dashboard dispatch failed", "error", err)
		}
	}()
}
