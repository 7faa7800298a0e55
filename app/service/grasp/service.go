package grasp

import (
	"log/slog"

	"semlog/app/config"
	"semlog/app/semantic"
	"semlog/app/service/aggregator"
	"semlog/app/service/contact"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// Service owns one grasp detector per configured hand.
type Service struct {
	detectors map[string]*Detector
	order     []string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	lookup := do.MustInvoke[*semantic.Registry](di)
	agg := do.MustInvoke[*aggregator.Service](di)
	contacts := do.MustInvoke[*contact.Detector](di)

	s := NewService()
	if !cfg.Events.Grasp {
		return s, nil
	}

	for _, hand := range cfg.Hands {
		err := s.Add(NewDetector(lookup, agg, contacts, Options{
			Hand:           hand.Handle,
			GroupA:         hand.GroupA,
			GroupB:         hand.GroupB,
			UnpauseTrigger: hand.UnpauseTrigger,
			StartPaused:    hand.StartPaused,
			DetectContacts: cfg.Events.ManipulatorContact,
		}))
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func NewService() *Service {
	return &Service{
		detectors: make(map[string]*Detector),
	}
}

func (s *Service) Add(d *Detector) error {
	if _, ok := s.detectors[d.opts.Hand]; ok {
		return oops.With("hand", d.opts.Hand).Errorf("grasp detector already registered")
	}

	s.detectors[d.opts.Hand] = d
	s.order = append(s.order, d.opts.Hand)

	return nil
}

func (s *Service) Detector(hand string) (*Detector, bool) {
	d, ok := s.detectors[hand]
	return d, ok
}

// Init initializes every detector and reports whether all succeeded.
func (s *Service) Init() bool {
	ok := true
	for _, hand := range s.order {
		if !s.detectors[hand].Init() {
			slog.Error("Grasp detector init failed", "hand", hand)
			ok = false
		}
	}
	return ok
}

func (s *Service) Start() bool {
	ok := true
	for _, hand := range s.order {
		if !s.detectors[hand].Start() {
			ok = false
		}
	}
	return ok
}

func (s *Service) Len() int {
	return len(s.order)
}

func (s *Service) Finish(t float64) int {
	closed := 0
	for _, hand := range s.order {
		closed += s.detectors[hand].Finish(t)
	}
	return closed
}
