package aggregator

import (
	"log/slog"
	"slices"

	"semlog/app/event"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Service holds the open and finished events of the active session.
// It is not safe for concurrent use; callers deliver from a single goroutine.
type Service struct {
	started  []*event.Event
	finished []*event.Event
	sealed   bool
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(), nil
}

func NewService() *Service {
	return &Service{}
}

// Start registers an open event.
func (s *Service) Start(ev *event.Event) bool {
	if ev == nil || !ev.IsOpen() {
		return false
	}
	if s.sealed {
		slog.Warn("Event started after pending events were finished", "event", ev.String())
		return false
	}
	if slices.Contains(s.started, ev) {
		return false
	}

	s.started = append(s.started, ev)

	return true
}

// Close ends a started event at t and moves it to the finished set.
func (s *Service) Close(ev *event.Event, t float64) bool {
	idx := slices.Index(s.started, ev)
	if idx < 0 {
		return false
	}

	ev.End(t)
	s.started = slices.Delete(s.started, idx, idx+1)
	s.finished = append(s.finished, ev)

	slog.Debug("Event finished", "event", ev.String())

	return true
}

// RecordFinished appends an already closed event.
func (s *Service) RecordFinished(ev *event.Event) bool {
	if ev == nil || ev.IsOpen() {
		return false
	}
	if slices.Contains(s.finished, ev) {
		return false
	}

	if idx := slices.Index(s.started, ev); idx >= 0 {
		s.started = slices.Delete(s.started, idx, idx+1)
	}
	s.finished = append(s.finished, ev)

	return true
}

// FinishPendingEvents closes every open event at endTime. Only the first
// call has an effect; it returns the number of events it closed.
func (s *Service) FinishPendingEvents(endTime float64) int {
	if s.sealed {
		return 0
	}
	s.sealed = true

	count := len(s.started)
	for _, ev := range s.started {
		ev.End(endTime)
		s.finished = append(s.finished, ev)
	}
	s.started = nil

	if count > 0 {
		slog.Info("Force finished pending events", "count", count, "time", endTime)
	}

	return count
}

func (s *Service) StartedCount() int {
	return len(s.started)
}

func (s *Service) FinishedCount() int {
	return len(s.finished)
}

// Finished returns copies of the finished events in completion order.
func (s *Service) Finished() []event.Event {
	return pie.Map(s.finished, func(ev *event.Event) event.Event {
		return *ev
	})
}

// FinishedOfKind returns copies of the finished events of one kind.
func (s *Service) FinishedOfKind(kind event.Kind) []event.Event {
	return pie.Filter(s.Finished(), func(ev event.Event) bool {
		return ev.Kind() == kind
	})
}
