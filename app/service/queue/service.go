package queue

import (
	"context"
	"log/slog"

	"semlog/app/config"

	"github.com/samber/do"
)

const defaultSize = 1024

var _ do.Shutdownable = (*Service)(nil)

// Service buffers signals between the host adapters and the engine, which is
// its only consumer.
type Service struct {
	queue chan Signal
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*config.Config](di).Server.QueueSize), nil
}

func NewService(size int) *Service {
	if size <= 0 {
		size = defaultSize
	}

	return &Service{
		queue: make(chan Signal, size),
	}
}

// Add enqueues without blocking. Signals are dropped when the queue is full
// or closed.
func (s *Service) Add(sig Signal) (added bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Signal queue is closed", "type", sig.Type)
			added = false
		}
	}()

	select {
	case s.queue <- sig:
		return true
	default:
		slog.Warn("Signal queue is full", "type", sig.Type, "time", sig.Time)
		return false
	}
}

// Push enqueues, waiting for room until ctx is done.
func (s *Service) Push(ctx context.Context, sig Signal) error {
	select {
	case s.queue <- sig:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) Channel() <-chan Signal {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
