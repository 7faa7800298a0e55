package grasp

import (
	"log/slog"

	"semlog/app/event"
	"semlog/app/semantic"

	"github.com/elliotchance/pie/v2"
)

type Group int

const (
	GroupA Group = iota
	GroupB
)

func (g Group) String() string {
	if g == GroupA {
		return "A"
	}
	return "B"
}

// Sink receives the grasp events the detector opens and closes.
type Sink interface {
	Start(ev *event.Event) bool
	Close(ev *event.Event, t float64) bool
}

// ContactForwarder receives hand contacts when manipulator contacts are detected.
type ContactForwarder interface {
	OnBeginContact(self, other semantic.Entity, t float64) bool
	OnEndContact(self, other semantic.Entity, t float64) bool
}

type Options struct {
	Hand   string
	GroupA []string
	GroupB []string
	// Trigger values at or above this resume detection, lower values pause it
	UnpauseTrigger float64
	StartPaused    bool
	DetectContacts bool
}

type shapeContact struct {
	shape  string
	object string
}

// Detector fuses the contacts of two opposing shape groups of a hand into
// grasp events. Transitions are evaluated after every state change.
type Detector struct {
	lookup   semantic.Lookup
	sink     Sink
	contacts ContactForwarder
	opts     Options

	hand    semantic.Entity
	groupOf map[string]Group

	touching      map[shapeContact]struct{}
	setA          map[string]int
	setB          map[string]int
	contactCounts map[string]int
	objects       map[string]semantic.Entity
	grasped       map[string]*event.Event

	paused    bool
	graspType string

	isInit     bool
	isStarted  bool
	isFinished bool
}

func NewDetector(lookup semantic.Lookup, sink Sink, contacts ContactForwarder, opts Options) *Detector {
	return &Detector{
		lookup:        lookup,
		sink:          sink,
		contacts:      contacts,
		opts:          opts,
		groupOf:       make(map[string]Group),
		touching:      make(map[shapeContact]struct{}),
		setA:          make(map[string]int),
		setB:          make(map[string]int),
		contactCounts: make(map[string]int),
		objects:       make(map[string]semantic.Entity),
		grasped:       make(map[string]*event.Event),
		paused:        opts.StartPaused,
	}
}

// Init resolves the hand and the overlap groups. It fails if the hand is not
// semantically annotated or a group is empty.
func (d *Detector) Init() bool {
	if d.isInit {
		return true
	}
	if d.lookup == nil || d.sink == nil {
		slog.Error("Grasp detector is missing its collaborators", "hand", d.opts.Hand)
		return false
	}

	hand, ok := d.lookup.Resolve(d.opts.Hand)
	if !ok {
		slog.Error("Grasp detector owner is not semantically annotated", "hand", d.opts.Hand)
		return false
	}

	notEmpty := func(shape string) bool { return shape != "" }
	groupA := pie.Unique(pie.Filter(d.opts.GroupA, notEmpty))
	groupB := pie.Unique(pie.Filter(d.opts.GroupB, notEmpty))
	if len(groupA) == 0 || len(groupB) == 0 {
		slog.Error("Grasp detector needs at least one shape in each group", "hand", d.opts.Hand)
		return false
	}
	if shared := pie.Intersect(groupA, groupB); len(shared) > 0 {
		slog.Error("Grasp detector shapes belong to both groups", "hand", d.opts.Hand, "shapes", shared)
		return false
	}

	for _, shape := range groupA {
		d.groupOf[shape] = GroupA
	}
	for _, shape := range groupB {
		d.groupOf[shape] = GroupB
	}

	d.hand = hand
	d.isInit = true

	return true
}

func (d *Detector) Start() bool {
	if !d.isInit || d.isFinished {
		slog.Warn("Grasp detector cannot start", "hand", d.opts.Hand, "init", d.isInit, "finished", d.isFinished)
		return false
	}

	d.isStarted = true
	return true
}

// Finish force-closes every open grasp at t.
func (d *Detector) Finish(t float64) int {
	if d.isFinished {
		return 0
	}

	closed := 0
	for _, id := range pie.Sort(pie.Keys(d.grasped)) {
		if d.release(id, t) {
			closed++
		}
	}

	d.isStarted = false
	d.isFinished = true

	return closed
}

func (d *Detector) Hand() semantic.Entity {
	return d.hand
}

func (d *Detector) IsPaused() bool {
	return d.paused
}

func (d *Detector) IsGrasped(objectID string) bool {
	_, ok := d.grasped[objectID]
	return ok
}

func (d *Detector) GraspedCount() int {
	return len(d.grasped)
}

// ContactCount is the number of shapes currently touching the object.
func (d *Detector) ContactCount(objectID string) int {
	return d.contactCounts[objectID]
}

// SetGraspType sets the type recorded on grasps that start afterwards.
func (d *Detector) SetGraspType(graspType string) {
	d.graspType = graspType
}

func (d *Detector) OnBeginShapeContact(shape string, other semantic.Entity, t float64) bool {
	group, ok := d.accepts(shape, other)
	if !ok {
		return false
	}

	key := shapeContact{shape: shape, object: other.ID}
	if _, ok := d.touching[key]; ok {
		return false
	}
	d.touching[key] = struct{}{}
	d.objects[other.ID] = other

	d.groupSet(group)[other.ID]++

	d.contactCounts[other.ID]++
	if d.contactCounts[other.ID] == 1 && d.opts.DetectContacts && d.contacts != nil {
		d.contacts.OnBeginContact(d.hand, other, t)
	}

	d.evaluate(t)

	return true
}

func (d *Detector) OnEndShapeContact(shape string, other semantic.Entity, t float64) bool {
	group, ok := d.accepts(shape, other)
	if !ok {
		return false
	}

	key := shapeContact{shape: shape, object: other.ID}
	if _, ok := d.touching[key]; !ok {
		return false
	}
	delete(d.touching, key)

	set := d.groupSet(group)
	if set[other.ID]--; set[other.ID] <= 0 {
		delete(set, other.ID)
	}

	if d.contactCounts[other.ID]--; d.contactCounts[other.ID] <= 0 {
		delete(d.contactCounts, other.ID)
		if d.opts.DetectContacts && d.contacts != nil {
			d.contacts.OnEndContact(d.hand, other, t)
		}
	}

	d.evaluate(t)

	return true
}

// OnInputTrigger pauses detection when the value drops below the unpause
// threshold and resumes it when the value reaches it again.
func (d *Detector) OnInputTrigger(value, t float64) {
	if !d.isStarted {
		return
	}

	if value >= d.opts.UnpauseTrigger {
		if d.paused {
			d.setPaused(false, t)
		}
	} else if !d.paused {
		d.setPaused(true, t)
	}
}

func (d *Detector) setPaused(paused bool, t float64) {
	d.paused = paused

	slog.Debug("Grasp detection pause changed", "hand", d.hand.ID, "paused", paused, "time", t)

	d.evaluate(t)
}

func (d *Detector) accepts(shape string, other semantic.Entity) (Group, bool) {
	if !d.isStarted {
		slog.Warn("Signal received by a grasp detector that is not running", "hand", d.opts.Hand, "shape", shape)
		return 0, false
	}

	group, ok := d.groupOf[shape]
	if !ok {
		slog.Warn("Signal from a shape outside the grasp groups", "hand", d.hand.ID, "shape", shape)
		return 0, false
	}
	if !other.IsSet() {
		slog.Warn("Signal rejected, entity is not semantically annotated",
			"hand", d.hand.ID,
			"shape", shape,
			"other", other.String())
		return 0, false
	}
	if other.ID == d.hand.ID {
		return 0, false
	}

	return group, true
}

func (d *Detector) groupSet(group Group) map[string]int {
	if group == GroupA {
		return d.setA
	}
	return d.setB
}

func (d *Detector) evaluate(t float64) {
	toGrasp, toRelease := transitions(d.setA, d.setB, pie.Keys(d.grasped), d.paused)

	for _, id := range toRelease {
		d.release(id, t)
	}
	for _, id := range toGrasp {
		d.grasp(id, t)
	}
}

func (d *Detector) grasp(objectID string, t float64) {
	other := d.objects[objectID]

	ev := event.New(t, semantic.PairID(d.hand.ID, other.ID), event.Grasp{
		Hand:      d.hand,
		Other:     other,
		GraspType: d.graspType,
	})
	if !d.sink.Start(ev) {
		return
	}
	d.grasped[objectID] = ev

	slog.Debug("Grasp started", "event", ev.String())
}

func (d *Detector) release(objectID string, t float64) bool {
	ev, ok := d.grasped[objectID]
	if !ok {
		return false
	}
	delete(d.grasped, objectID)

	return d.sink.Close(ev, t)
}
