package grasp

import (
	"testing"

	"semlog/app/event"
	"semlog/app/semantic"
	"semlog/app/service/aggregator"
	"semlog/app/service/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]semantic.Entity

func (m mapLookup) Resolve(handle string) (semantic.Entity, bool) {
	e, ok := m[handle]
	return e, ok
}

var (
	hand   = semantic.Entity{ID: "LH_1", Class: "LeftHand"}
	bottle = semantic.Entity{ID: "Bottle_7", Class: "Bottle"}
	cup    = semantic.Entity{ID: "Cup_1", Class: "Cup"}

	lookup = mapLookup{"LeftHand": hand}
)

func defaultOptions() Options {
	return Options{
		Hand:           "LeftHand",
		GroupA:         []string{"F1", "F3"},
		GroupB:         []string{"F2"},
		UnpauseTrigger: 0.5,
	}
}

func newStarted(t *testing.T, opts Options) (*Detector, *aggregator.Service) {
	t.Helper()

	agg := aggregator.NewService()
	d := NewDetector(lookup, agg, nil, opts)
	require.True(t, d.Init())
	require.True(t, d.Start())

	return d, agg
}

func TestScenarioB(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	require.True(t, d.OnBeginShapeContact("F1", bottle, 1.0))
	assert.False(t, d.IsGrasped(bottle.ID), "one group only")
	assert.Equal(t, 0, agg.StartedCount())

	require.True(t, d.OnBeginShapeContact("F2", bottle, 1.2))
	assert.True(t, d.IsGrasped(bottle.ID))
	require.Equal(t, 1, agg.StartedCount())

	require.True(t, d.OnEndShapeContact("F2", bottle, 3.5))
	assert.False(t, d.IsGrasped(bottle.ID))

	finished := agg.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, event.KindGrasp, finished[0].Kind())
	assert.Equal(t, 1.2, finished[0].StartTime)
	assert.Equal(t, 3.5, finished[0].EndTime)
	assert.Equal(t, semantic.PairID(hand.ID, bottle.ID), finished[0].PairID)

	details, ok := finished[0].Details.(event.Grasp)
	require.True(t, ok)
	assert.Equal(t, hand, details.Hand)
	assert.Equal(t, bottle, details.Other)
}

func TestReleaseWhenGroupALosesContact(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	d.OnEndShapeContact("F1", bottle, 2.0)

	assert.False(t, d.IsGrasped(bottle.ID))
	assert.Equal(t, 1, agg.FinishedCount())
}

func TestMultipleShapesInGroupKeepGrasp(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F3", bottle, 1.1)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	assert.Equal(t, 3, d.ContactCount(bottle.ID))

	d.OnEndShapeContact("F1", bottle, 2.0)
	assert.True(t, d.IsGrasped(bottle.ID), "F3 still touches from group A")
	assert.Equal(t, 0, agg.FinishedCount())

	d.OnEndShapeContact("F3", bottle, 2.5)
	assert.False(t, d.IsGrasped(bottle.ID))
	assert.Equal(t, 1, d.ContactCount(bottle.ID))

	finished := agg.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, 2.5, finished[0].EndTime)
}

func TestDuplicateAndSpuriousShapeSignals(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	assert.True(t, d.OnBeginShapeContact("F1", bottle, 1.0))
	assert.False(t, d.OnBeginShapeContact("F1", bottle, 1.05))
	assert.Equal(t, 1, d.ContactCount(bottle.ID))

	assert.False(t, d.OnEndShapeContact("F2", bottle, 1.1), "F2 never touched")
	assert.False(t, d.OnBeginShapeContact("Palm", bottle, 1.1), "unknown shape")
	assert.False(t, d.OnBeginShapeContact("F2", semantic.Entity{ID: "x"}, 1.1))
	assert.False(t, d.OnBeginShapeContact("F2", hand, 1.1), "hand touching itself")

	assert.Equal(t, 0, agg.StartedCount())
}

func TestPauseForceReleases(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	d.OnBeginShapeContact("F1", cup, 1.3)
	d.OnBeginShapeContact("F2", cup, 1.4)
	require.Equal(t, 2, d.GraspedCount())

	d.OnInputTrigger(0.1, 2.0)
	assert.True(t, d.IsPaused())
	assert.Equal(t, 0, d.GraspedCount())

	finished := agg.Finished()
	require.Len(t, finished, 2)
	for _, ev := range finished {
		assert.Equal(t, 2.0, ev.EndTime)
	}

	d.OnBeginShapeContact("F3", bottle, 2.5)
	assert.False(t, d.IsGrasped(bottle.ID), "no grasps while paused")
}

func TestResumeStartsFreshGrasp(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	d.OnInputTrigger(0.0, 2.0)
	d.OnInputTrigger(0.9, 3.0)

	assert.False(t, d.IsPaused())
	assert.True(t, d.IsGrasped(bottle.ID))
	require.Equal(t, 1, agg.StartedCount())
	require.Equal(t, 1, agg.FinishedCount())

	assert.Equal(t, 1, d.Finish(4.0))

	finished := agg.Finished()
	require.Len(t, finished, 2)
	assert.NotEqual(t, finished[0].ID, finished[1].ID, "resume opens a new event")
	assert.Equal(t, 1.2, finished[0].StartTime)
	assert.Equal(t, 2.0, finished[0].EndTime)
	assert.Equal(t, 3.0, finished[1].StartTime)
	assert.Equal(t, 4.0, finished[1].EndTime)
}

func TestStartPaused(t *testing.T) {
	opts := defaultOptions()
	opts.StartPaused = true
	d, agg := newStarted(t, opts)

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	assert.False(t, d.IsGrasped(bottle.ID))

	d.OnInputTrigger(0.7, 1.5)
	assert.True(t, d.IsGrasped(bottle.ID))

	started := agg.StartedCount()
	assert.Equal(t, 1, started)
}

func TestTriggerAboveThresholdWhileRunningIsNoop(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	d.OnInputTrigger(1.0, 1.5)

	assert.True(t, d.IsGrasped(bottle.ID))
	assert.Equal(t, 1, agg.StartedCount())
	assert.Equal(t, 0, agg.FinishedCount())
}

func TestGraspType(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())
	d.SetGraspType("PinchGrasp")

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)
	d.Finish(2.0)

	finished := agg.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, "PinchGrasp", finished[0].Details.(event.Grasp).GraspType)
}

func TestManipulatorContactsForwarded(t *testing.T) {
	agg := aggregator.NewService()
	contacts := contact.NewDetector(agg, contact.Options{Contact: true})
	require.True(t, contacts.Init())
	require.True(t, contacts.Start())

	opts := defaultOptions()
	opts.DetectContacts = true
	d := NewDetector(lookup, agg, contacts, opts)
	require.True(t, d.Init())
	require.True(t, d.Start())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F3", bottle, 1.1)
	assert.Equal(t, 1, contacts.OpenCount(), "one contact for many shapes")

	d.OnEndShapeContact("F1", bottle, 2.0)
	assert.Equal(t, 1, contacts.OpenCount())

	d.OnEndShapeContact("F3", bottle, 2.5)
	assert.Equal(t, 0, contacts.OpenCount())

	finished := agg.FinishedOfKind(event.KindContact)
	require.Len(t, finished, 1)
	assert.Equal(t, 1.0, finished[0].StartTime)
	assert.Equal(t, 2.5, finished[0].EndTime)
}

func TestInitFailures(t *testing.T) {
	agg := aggregator.NewService()

	opts := defaultOptions()
	opts.Hand = "Unknown"
	assert.False(t, NewDetector(lookup, agg, nil, opts).Init(), "unresolved hand")

	opts = defaultOptions()
	opts.GroupB = nil
	assert.False(t, NewDetector(lookup, agg, nil, opts).Init(), "empty group")

	opts = defaultOptions()
	opts.GroupB = []string{"F1"}
	assert.False(t, NewDetector(lookup, agg, nil, opts).Init(), "shape in both groups")

	assert.False(t, NewDetector(nil, agg, nil, defaultOptions()).Init())

	d := NewDetector(lookup, agg, nil, defaultOptions())
	assert.False(t, d.Start())
	assert.False(t, d.OnBeginShapeContact("F1", bottle, 1.0))
}

func TestFinishIsTerminal(t *testing.T) {
	d, agg := newStarted(t, defaultOptions())

	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)

	assert.Equal(t, 1, d.Finish(5.0))
	assert.Equal(t, 0, d.Finish(6.0))
	assert.False(t, d.OnBeginShapeContact("F1", cup, 7.0))

	finished := agg.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, 5.0, finished[0].EndTime)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name        string
		setA, setB  map[string]int
		grasped     []string
		paused      bool
		wantGrasp   []string
		wantRelease []string
	}{
		{
			name:      "intersection grasps",
			setA:      map[string]int{"a": 1, "b": 1},
			setB:      map[string]int{"b": 2, "c": 1},
			wantGrasp: []string{"b"},
		},
		{
			name:        "left intersection releases",
			setA:        map[string]int{"a": 1},
			setB:        map[string]int{"b": 1},
			grasped:     []string{"a"},
			wantRelease: []string{"a"},
		},
		{
			name:    "already grasped stays",
			setA:    map[string]int{"a": 1},
			setB:    map[string]int{"a": 1},
			grasped: []string{"a"},
		},
		{
			name:        "pause releases everything",
			setA:        map[string]int{"a": 1, "b": 1},
			setB:        map[string]int{"a": 1, "b": 1},
			grasped:     []string{"a", "b"},
			paused:      true,
			wantRelease: []string{"a", "b"},
		},
		{
			name:   "zero counts do not count",
			setA:   map[string]int{"a": 0},
			setB:   map[string]int{"a": 1},
			paused: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toGrasp, toRelease := transitions(tt.setA, tt.setB, tt.grasped, tt.paused)
			assert.ElementsMatch(t, tt.wantGrasp, toGrasp)
			assert.ElementsMatch(t, tt.wantRelease, toRelease)
		})
	}
}

func TestServiceRejectsDuplicateHands(t *testing.T) {
	agg := aggregator.NewService()
	s := NewService()

	require.NoError(t, s.Add(NewDetector(lookup, agg, nil, defaultOptions())))
	assert.Error(t, s.Add(NewDetector(lookup, agg, nil, defaultOptions())))
	assert.Equal(t, 1, s.Len())

	require.True(t, s.Init())
	require.True(t, s.Start())

	d, ok := s.Detector("LeftHand")
	require.True(t, ok)
	d.OnBeginShapeContact("F1", bottle, 1.0)
	d.OnBeginShapeContact("F2", bottle, 1.2)

	assert.Equal(t, 1, s.Finish(3.0))
	assert.Equal(t, 1, agg.FinishedCount())
}
