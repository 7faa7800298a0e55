package contact

import (
	"cmp"
	"log/slog"
	"slices"

	"semlog/app/config"
	"semlog/app/event"
	"semlog/app/semantic"
	"semlog/app/service/aggregator"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Sink receives the events a detector opens and closes.
type Sink interface {
	Start(ev *event.Event) bool
	Close(ev *event.Event, t float64) bool
}

type Options struct {
	Contact     bool
	SupportedBy bool
}

type pairKey struct {
	kind event.Kind
	pair uint64
}

// Detector pairs symmetric overlap begin/end signals into contact and
// supported-by events. Both participants of an interaction may report the
// same overlap; only the first begin opens an event.
type Detector struct {
	sink Sink
	opts Options

	open map[pairKey]*event.Event

	isInit     bool
	isStarted  bool
	isFinished bool
}

func New(di *do.Injector) (*Detector, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewDetector(do.MustInvoke[*aggregator.Service](di), Options{
		Contact:     cfg.Events.Contact,
		SupportedBy: cfg.Events.SupportedBy,
	}), nil
}

func NewDetector(sink Sink, opts Options) *Detector {
	return &Detector{
		sink: sink,
		opts: opts,
		open: make(map[pairKey]*event.Event),
	}
}

func (d *Detector) Init() bool {
	if d.isInit {
		return true
	}
	if d.sink == nil {
		slog.Error("Contact detector has no event sink")
		return false
	}

	d.isInit = true
	return true
}

func (d *Detector) Start() bool {
	if !d.isInit || d.isFinished {
		slog.Warn("Contact detector cannot start", "init", d.isInit, "finished", d.isFinished)
		return false
	}

	d.isStarted = true
	return true
}

// Finish closes every open event at t and stops accepting signals.
func (d *Detector) Finish(t float64) int {
	if d.isFinished {
		return 0
	}

	pending := pie.Values(d.open)
	slices.SortFunc(pending, func(a, b *event.Event) int {
		return cmp.Or(cmp.Compare(a.StartTime, b.StartTime), cmp.Compare(a.ID, b.ID))
	})

	for _, ev := range pending {
		d.sink.Close(ev, t)
	}
	clear(d.open)

	d.isStarted = false
	d.isFinished = true

	return len(pending)
}

func (d *Detector) IsStarted() bool {
	return d.isStarted
}

func (d *Detector) OpenCount() int {
	return len(d.open)
}

func (d *Detector) OnBeginContact(self, other semantic.Entity, t float64) bool {
	if !d.opts.Contact {
		return false
	}
	return d.begin(event.Contact{A: self, B: other}, self, other, t)
}

func (d *Detector) OnEndContact(self, other semantic.Entity, t float64) bool {
	if !d.opts.Contact {
		return false
	}
	return d.end(event.KindContact, self, other, t)
}

// OnBeginSupportedBy opens a supported-by event. The vertical support check
// is done by the caller.
func (d *Detector) OnBeginSupportedBy(supported, supporting semantic.Entity, t float64) bool {
	if !d.opts.SupportedBy {
		return false
	}
	return d.begin(event.SupportedBy{Supported: supported, Supporting: supporting}, supported, supporting, t)
}

func (d *Detector) OnEndSupportedBy(supported, supporting semantic.Entity, t float64) bool {
	if !d.opts.SupportedBy {
		return false
	}
	return d.end(event.KindSupportedBy, supported, supporting, t)
}

func (d *Detector) accepts(kind event.Kind, self, other semantic.Entity) bool {
	if !d.isStarted {
		slog.Warn("Signal received by a contact detector that is not running",
			"kind", kind,
			"self", self.ID,
			"other", other.ID)
		return false
	}
	if !self.IsSet() || !other.IsSet() {
		slog.Warn("Signal rejected, entity is not semantically annotated",
			"kind", kind,
			"self", self.String(),
			"other", other.String())
		return false
	}
	if self.ID == other.ID {
		slog.Debug("Signal rejected, entity overlaps itself", "kind", kind, "id", self.ID)
		return false
	}

	return true
}

func (d *Detector) begin(details event.Details, self, other semantic.Entity, t float64) bool {
	kind := details.Kind()
	if !d.accepts(kind, self, other) {
		return false
	}

	key := pairKey{kind: kind, pair: semantic.PairID(self.ID, other.ID)}
	if _, ok := d.open[key]; ok {
		return false
	}

	ev := event.New(t, key.pair, details)
	if !d.sink.Start(ev) {
		return false
	}
	d.open[key] = ev

	slog.Debug("Event started", "event", ev.String())

	return true
}

func (d *Detector) end(kind event.Kind, self, other semantic.Entity, t float64) bool {
	if !d.accepts(kind, self, other) {
		return false
	}

	key := pairKey{kind: kind, pair: semantic.PairID(self.ID, other.ID)}
	ev, ok := d.open[key]
	if !ok {
		return false
	}
	delete(d.open, key)

	return d.sink.Close(ev, t)
}
