// Package server exposes saved projects over HTTP: load, save, delete and
// an overlap check that runs the placement rules on a stored project.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"placer/internal/config"
	"placer/internal/engine"
	"placer/internal/store"
	"placer/internal/world"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ProjectStore is the persistence the server needs; *store.Store satisfies it.
type ProjectStore interface {
	Save(ctx context.Context, f world.ProjectFile) error
	Load(ctx context.Context, id string) (world.ProjectFile, error)
	List(ctx context.Context) ([]store.Summary, error)
	Delete(ctx context.Context, id string) error
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func WithConfig(cfg config.Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithAccessLog toggles the per-request log line.
func WithAccessLog(on bool) Option {
	return func(s *Server) { s.accessLog = on }
}

// ============================================================
// Server
// ============================================================

type Server struct {
	app       *fiber.App
	store     ProjectStore
	log       *slog.Logger
	accessLog bool

	mu  sync.RWMutex
	cfg config.Config
}

func New(st ProjectStore, opts ...Option) *Server {
	s := &Server{
		store:     st,
		log:       slog.Default(),
		accessLog: true,
		cfg:       config.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "placer",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	s.app.Use(recover.New())
	if s.accessLog {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		if _, err := s.store.List(c.Context()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	s.app.Get("/projects", s.listProjects)
	s.app.Get("/projects/:id", s.getProject)
	s.app.Put("/projects/:id", s.putProject)
	s.app.Delete("/projects/:id", s.deleteProject)
	s.app.Get("/projects/:id/overlaps", s.checkProject)
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info("http server listening", "addr", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// SetConfig swaps the settings used by later overlap checks.
func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *Server) config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) listProjects(c fiber.Ctx) error {
	list, err := s.store.List(c.Context())
	if err != nil {
		return s.internal(c, "list projects", err)
	}
	return c.JSON(list)
}

func (s *Server) getProject(c fiber.Ctx) error {
	f, err := s.store.Load(c.Context(), c.Params("id"))
	if err != nil {
		return s.loadFailed(c, err)
	}
	return c.JSON(f)
}

func (s *Server) putProject(c fiber.Ctx) error {
	id := c.Params("id")
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}
	f, err := world.Decode(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if f.ID != "" && f.ID != id {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "id in body does not match path"})
	}
	f.ID = id

	if err := s.store.Save(c.Context(), f); err != nil {
		return s.internal(c, "save project", err)
	}
	s.log.Info("project saved", "project", id, "parts", len(f.Parts))
	return c.JSON(fiber.Map{"id": id, "parts": len(f.Parts)})
}

func (s *Server) deleteProject(c fiber.Ctx) error {
	id := c.Params("id")
	if err := s.store.Delete(c.Context(), id); err != nil {
		return s.loadFailed(c, err)
	}
	s.log.Info("project deleted", "project", id)
	return c.SendStatus(http.StatusNoContent)
}

type checkResponse struct {
	ID          string      `json:"id"`
	Parts       int         `json:"parts"`
	Overlaps    [][2]string `json:"overlaps"`
	BelowGround []string    `json:"belowGround"`
}

// checkProject loads the project into a request-scoped scene and reports the
// overlapping pairs and the parts that would be lifted onto the ground.
func (s *Server) checkProject(c fiber.Ctx) error {
	id := c.Params("id")
	f, err := s.store.Load(c.Context(), id)
	if err != nil {
		return s.loadFailed(c, err)
	}

	scene := engine.NewScene(
		engine.WithLogger(s.log),
		engine.WithSettings(s.config().SceneSettings()),
	)
	scene.SetProjectContext(id, f.SceneParts())

	resp := checkResponse{
		ID:          id,
		Parts:       scene.Len(),
		Overlaps:    scene.OverlappingPairs(),
		BelowGround: scene.Revalidate(),
	}
	if resp.Overlaps == nil {
		resp.Overlaps = [][2]string{}
	}
	if resp.BelowGround == nil {
		resp.BelowGround = []string{}
	}
	return c.JSON(resp)
}

// ============================================================
// Helpers
// ============================================================

func (s *Server) loadFailed(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}
	return s.internal(c, "load project", err)
}

func (s *Server) internal(c fiber.Ctx, what string, err error) error {
	s.log.Error(what, "path", c.Path(), "err", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": what + " failed"})
}
