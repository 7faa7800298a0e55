package engine

import (
	"context"
	"log/slog"

	"semlog/app/config"
	"semlog/app/event"
	"semlog/app/semantic"
	"semlog/app/service/queue"
	"semlog/app/service/session"

	"github.com/samber/do"
)

// Service is the single consumer of the signal queue. Every detector call
// happens on the goroutine running Run.
type Service struct {
	lookup   semantic.Lookup
	queueSvc *queue.Service
	session  *session.Service
	template string
	episode  string

	lastTime float64
	output   string
	ok       bool
	done     chan struct{}
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(
		do.MustInvoke[*semantic.Registry](di),
		do.MustInvoke[*queue.Service](di),
		do.MustInvoke[*session.Service](di),
		cfg.Episode.Template,
		cfg.Episode.EpisodeID,
	), nil
}

func NewService(lookup semantic.Lookup, queueSvc *queue.Service, sess *session.Service, template, episode string) *Service {
	return &Service{
		lookup:   lookup,
		queueSvc: queueSvc,
		session:  sess,
		template: template,
		episode:  episode,
		done:     make(chan struct{}),
	}
}

// Run starts the session and dispatches signals until a finish signal
// arrives, the queue is closed or ctx is done. The session is then finished
// at the latest signal time.
func (s *Service) Run(ctx context.Context) {
	defer close(s.done)

	if !s.session.Init(s.template, s.episode) || !s.session.Start() {
		slog.Error("Session could not be started", "episode", s.episode)
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Context done, finishing session", "time", s.lastTime)
			s.finish(s.lastTime)
			return
		case sig, ok := <-s.queueSvc.Channel():
			if !ok {
				slog.Info("Signal queue closed, finishing session", "time", s.lastTime)
				s.finish(s.lastTime)
				return
			}

			if s.dispatch(sig) {
				return
			}
		}
	}
}

// Done is closed once Run returns.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Result returns the serialized episode and whether it was written. It is
// valid after Done is closed.
func (s *Service) Result() (string, bool) {
	return s.output, s.ok
}

func (s *Service) finish(t float64) {
	s.output, s.ok = s.session.Finish(t)
}

// dispatch handles one signal and reports whether the session finished.
func (s *Service) dispatch(sig queue.Signal) bool {
	if sig.Time > s.lastTime {
		s.lastTime = sig.Time
	}

	switch sig.Type {
	case queue.SignalBeginContact:
		s.session.Contacts().OnBeginContact(s.resolve(sig.Self), s.resolve(sig.Other), sig.Time)
	case queue.SignalEndContact:
		s.session.Contacts().OnEndContact(s.resolve(sig.Self), s.resolve(sig.Other), sig.Time)
	case queue.SignalBeginSupportedBy:
		s.session.Contacts().OnBeginSupportedBy(s.resolve(sig.Self), s.resolve(sig.Other), sig.Time)
	case queue.SignalEndSupportedBy:
		s.session.Contacts().OnEndSupportedBy(s.resolve(sig.Self), s.resolve(sig.Other), sig.Time)
	case queue.SignalBeginShape:
		if d, ok := s.session.Grasps().Detector(sig.Self); ok {
			d.OnBeginShapeContact(sig.Shape, s.resolve(sig.Other), sig.Time)
		} else {
			slog.Warn("Shape contact for a hand without grasp detector", "hand", sig.Self)
		}
	case queue.SignalEndShape:
		if d, ok := s.session.Grasps().Detector(sig.Self); ok {
			d.OnEndShapeContact(sig.Shape, s.resolve(sig.Other), sig.Time)
		} else {
			slog.Warn("Shape contact for a hand without grasp detector", "hand", sig.Self)
		}
	case queue.SignalTrigger:
		if d, ok := s.session.Grasps().Detector(sig.Self); ok {
			d.OnInputTrigger(sig.Value, sig.Time)
		}
	case queue.SignalGraspType:
		if d, ok := s.session.Grasps().Detector(sig.Self); ok {
			d.SetGraspType(sig.Kind)
		}
	case queue.SignalRecord:
		s.record(sig)
	case queue.SignalFinish:
		s.finish(s.lastTime)
		return true
	default:
		slog.Warn("Unknown signal type", "type", sig.Type)
	}

	return false
}

func (s *Service) resolve(handle string) semantic.Entity {
	e, ok := s.lookup.Resolve(handle)
	if !ok {
		slog.Debug("Handle is not semantically annotated", "handle", handle)
	}
	return e
}

// record builds a finished event of a kind that has no detector.
func (s *Service) record(sig queue.Signal) {
	self := s.resolve(sig.Self)
	other := s.resolve(sig.Other)

	var details event.Details
	switch sig.Kind {
	case event.KindPreGraspPositioning.String():
		details = event.PreGraspPositioning{Manipulator: self, Individual: other}
	case event.KindPutDown.String():
		details = event.PutDown{Manipulator: self, Individual: other}
	case event.KindSlicing.String():
		slicing := event.Slicing{PerformedBy: self, DeviceUsed: other, TaskSuccess: sig.Success}
		if len(sig.Objects) > 0 {
			slicing.ObjectActedOn = s.resolve(sig.Objects[0])
		}
		if len(sig.Objects) > 1 {
			slicing.OutputsCreated = s.resolve(sig.Objects[1])
		}
		details = slicing
	default:
		slog.Warn("Event kind cannot be recorded", "kind", sig.Kind)
		return
	}

	for _, p := range details.Participants() {
		if !p.IsSet() {
			slog.Warn("Recorded event rejected, entity is not semantically annotated",
				"kind", sig.Kind,
				"entity", p.String())
			return
		}
	}

	ev := event.New(sig.Start, semantic.PairID(self.ID, other.ID), details)
	ev.End(sig.Time)
	s.session.Record(ev)
}
