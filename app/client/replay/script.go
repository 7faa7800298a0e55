package replay

import (
	"context"
	"os"

	"semlog/app/service/queue"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Script is a recorded episode: the signals in delivery order.
type Script struct {
	// Overrides the configured episode id when set
	EpisodeID string         `yaml:"episode_id"`
	Signals   []queue.Signal `yaml:"signals"`
}

// Progress is notified after every fed signal.
type Progress interface {
	Add(n int) error
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("replay").With("path", path).Wrapf(err, "failed to read replay script")
	}

	script, err := Parse(data)
	if err != nil {
		return nil, oops.In("replay").With("path", path).Wrap(err)
	}

	return script, nil
}

func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, oops.Errorf("failed to parse replay script: %w", err)
	}

	if len(script.Signals) == 0 {
		return nil, oops.Errorf("replay script has no signals")
	}

	for i, sig := range script.Signals {
		if err := sig.Validate(); err != nil {
			return nil, oops.With("index", i).Wrap(err)
		}
	}

	return &script, nil
}

// Duration is the time of the latest signal.
func (s *Script) Duration() float64 {
	var latest float64
	for _, sig := range s.Signals {
		latest = max(latest, sig.Time)
	}
	return latest
}

// HasFinish reports whether the script finishes the episode itself.
func (s *Script) HasFinish() bool {
	for _, sig := range s.Signals {
		if sig.Type == queue.SignalFinish {
			return true
		}
	}
	return false
}

// Feed pushes every signal into the queue, waiting for room, and appends a
// finish signal if the script has none.
func (s *Script) Feed(ctx context.Context, q *queue.Service, progress Progress) error {
	signals := s.Signals
	if !s.HasFinish() {
		signals = append(signals[:len(signals):len(signals)], queue.Signal{
			Type: queue.SignalFinish,
			Time: s.Duration(),
		})
	}

	for i, sig := range signals {
		if err := q.Push(ctx, sig); err != nil {
			return oops.In("replay").With("index", i).Wrapf(err, "failed to feed signal")
		}
		if progress != nil {
			_ = progress.Add(1)
		}
	}

	return nil
}
