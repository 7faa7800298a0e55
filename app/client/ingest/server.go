package ingest

import (
	"log/slog"

	"semlog/app/config"
	"semlog/app/service/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var _ do.Shutdownable = (*Server)(nil)

// Server accepts simulation signals over HTTP and hands them to the queue.
type Server struct {
	addr     string
	queueSvc *queue.Service
	app      *fiber.App
}

type signalsResponse struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

type finishRequest struct {
	Time float64 `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(di *do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewServer(cfg.Server.Addr, do.MustInvoke[*queue.Service](di)), nil
}

func NewServer(addr string, queueSvc *queue.Service) *Server {
	s := &Server{
		addr:     addr,
		queueSvc: queueSvc,
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
	}

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/signals", s.handleSignals)
	s.app.Post("/finish", s.handleFinish)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until Shutdown is called.
func (s *Server) Run() error {
	slog.Info("Signal ingest listening", "addr", s.addr)

	if err := s.app.Listen(s.addr); err != nil {
		return oops.In("ingest").With("addr", s.addr).Wrapf(err, "listen failed")
	}

	return nil
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleSignals(c *fiber.Ctx) error {
	var signals []queue.Signal
	if err := c.BodyParser(&signals); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "body must be a JSON array of signals"})
	}

	for i, sig := range signals {
		if err := sig.Validate(); err != nil {
			slog.Debug("Rejected signal batch", "index", i, "error", err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{Error: err.Error()})
		}
	}

	var resp signalsResponse
	for _, sig := range signals {
		if s.queueSvc.Add(sig) {
			resp.Accepted++
		} else {
			resp.Dropped++
		}
	}

	status := fiber.StatusAccepted
	if resp.Dropped > 0 {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func (s *Server) handleFinish(c *fiber.Ctx) error {
	var req finishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid finish request"})
		}
	}

	if !s.queueSvc.Add(queue.Signal{Type: queue.SignalFinish, Time: req.Time}) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: "signal queue is full"})
	}

	return c.SendStatus(fiber.StatusAccepted)
}
