package session

import (
	"log/slog"

	"semlog/app/client/owlfile"
	"semlog/app/client/redisstore"
	"semlog/app/client/s3store"
	"semlog/app/client/timeline"
	"semlog/app/config"
	"semlog/app/event"
	"semlog/app/owl"
	"semlog/app/service/aggregator"
	"semlog/app/service/contact"
	"semlog/app/service/grasp"
	"semlog/app/util/ids"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// DocumentWriter persists the serialized episode document.
type DocumentWriter interface {
	Write(episodeID, text string) error
}

// TimelineWriter persists the finished events per event kind.
type TimelineWriter interface {
	Write(episodeID string, events []event.Event) error
}

// Service is one logging episode. It owns the detectors' lifecycle and turns
// the finished events into the episode document on Finish.
type Service struct {
	aggregator *aggregator.Service
	contacts   *contact.Detector
	grasps     *grasp.Service

	documents []DocumentWriter
	timelines []TimelineWriter

	taskID    string
	episodeID string
	doc       *owl.Document

	output   string
	outputOK bool

	isInit     bool
	isStarted  bool
	isFinished bool
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	s := NewService(
		do.MustInvoke[*aggregator.Service](di),
		do.MustInvoke[*contact.Detector](di),
		do.MustInvoke[*grasp.Service](di),
	)
	s.taskID = cfg.Episode.TaskID
	s.AddDocumentWriter(do.MustInvoke[*owlfile.Writer](di))
	if c := do.MustInvoke[*s3store.Client](di); c != nil {
		s.AddDocumentWriter(c)
	}
	if c := do.MustInvoke[*redisstore.Client](di); c != nil {
		s.AddDocumentWriter(c)
	}
	if cfg.Episode.WriteTimelines {
		s.AddTimelineWriter(do.MustInvoke[*timeline.Writer](di))
	}

	return s, nil
}

func NewService(agg *aggregator.Service, contacts *contact.Detector, grasps *grasp.Service) *Service {
	return &Service{
		aggregator: agg,
		contacts:   contacts,
		grasps:     grasps,
	}
}

func (s *Service) AddDocumentWriter(w DocumentWriter) {
	s.documents = append(s.documents, w)
}

func (s *Service) AddTimelineWriter(w TimelineWriter) {
	s.timelines = append(s.timelines, w)
}

func (s *Service) SetTaskID(taskID string) {
	s.taskID = taskID
}

// Init creates the episode document and initializes the detectors. An empty
// episode id is replaced by a generated one.
func (s *Service) Init(template, episodeID string) bool {
	if s.isInit {
		return true
	}
	if s.aggregator == nil {
		slog.Error("Session has no event aggregator")
		return false
	}

	if episodeID == "" {
		episodeID = ids.New()
	}

	if s.contacts != nil && !s.contacts.Init() {
		return false
	}
	if s.grasps != nil && !s.grasps.Init() {
		return false
	}

	s.episodeID = episodeID
	s.doc = owl.CreateFromTemplate(owl.TemplateKind(template), episodeID)
	s.isInit = true

	slog.Info("Session initialized", "episode", episodeID, "template", template)

	return true
}

func (s *Service) Start() bool {
	if !s.isInit || s.isFinished {
		slog.Warn("Session cannot start", "init", s.isInit, "finished", s.isFinished)
		return false
	}
	if s.isStarted {
		return true
	}

	if s.contacts != nil && !s.contacts.Start() {
		return false
	}
	if s.grasps != nil && !s.grasps.Start() {
		return false
	}

	s.isStarted = true

	slog.Info("Session started", "episode", s.episodeID)

	return true
}

// Record stores an event detected outside the session's detectors.
func (s *Service) Record(ev *event.Event) bool {
	if !s.isStarted {
		slog.Warn("Event recorded outside a running session")
		return false
	}
	return s.aggregator.RecordFinished(ev)
}

// Finish closes every open event at t, assembles and serializes the episode
// document and hands it to the writers. It runs once; later calls return the
// first result. The result is false when the session never started or a
// writer failed.
func (s *Service) Finish(t float64) (string, bool) {
	if s.isFinished {
		return s.output, s.outputOK
	}
	if !s.isStarted {
		slog.Warn("Finish called on a session that was not started", "init", s.isInit)
		return "", false
	}

	if s.contacts != nil {
		s.contacts.Finish(t)
	}
	if s.grasps != nil {
		s.grasps.Finish(t)
	}
	s.aggregator.FinishPendingEvents(t)

	finished := s.aggregator.Finished()
	for _, ev := range finished {
		s.doc.AddEvent(ev)
	}
	s.doc.AddTimepointIndividuals()
	s.doc.AddObjectIndividuals()
	s.doc.AddExperimentIndividual(s.taskID)

	s.output = owl.Serialize(s.doc)
	s.outputOK = s.write(finished)
	s.isStarted = false
	s.isFinished = true

	slog.Info("Session finished",
		"episode", s.episodeID,
		"time", t,
		"events", len(finished),
		"timepoints", s.doc.TimepointCount(),
		"objects", s.doc.ObjectCount())

	return s.output, s.outputOK
}

func (s *Service) write(finished []event.Event) bool {
	var g errgroup.Group

	for _, w := range s.documents {
		g.Go(func() error {
			return w.Write(s.episodeID, s.output)
		})
	}
	for _, w := range s.timelines {
		g.Go(func() error {
			return w.Write(s.episodeID, finished)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Failed to write episode", "episode", s.episodeID, "error", err)
		return false
	}

	return true
}

func (s *Service) EpisodeID() string {
	return s.episodeID
}

func (s *Service) Document() *owl.Document {
	return s.doc
}

func (s *Service) Aggregator() *aggregator.Service {
	return s.aggregator
}

func (s *Service) Contacts() *contact.Detector {
	return s.contacts
}

func (s *Service) Grasps() *grasp.Service {
	return s.grasps
}

func (s *Service) IsStarted() bool {
	return s.isStarted
}

func (s *Service) IsFinished() bool {
	return s.isFinished
}
