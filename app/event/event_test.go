package event

import (
	"testing"

	"semlog/app/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cup   = semantic.Entity{ID: "Cup_1", Class: "Cup"}
	table = semantic.Entity{ID: "Table_1", Class: "Table"}
)

func TestNewIsOpen(t *testing.T) {
	ev := New(2.0, semantic.PairID(cup.ID, table.ID), Contact{A: cup, B: table})

	assert.NotEmpty(t, ev.ID)
	assert.True(t, ev.IsOpen())
	assert.Equal(t, KindContact, ev.Kind())
	assert.Equal(t, 0.0, ev.Duration())
}

func TestEnd(t *testing.T) {
	ev := New(2.0, 1, Contact{A: cup, B: table})

	require.True(t, ev.End(5.0))
	assert.False(t, ev.IsOpen())
	assert.Equal(t, 5.0, ev.EndTime)
	assert.Equal(t, 3.0, ev.Duration())

	assert.False(t, ev.End(7.0), "closed events keep their end time")
	assert.Equal(t, 5.0, ev.EndTime)
}

func TestEndClampsToStart(t *testing.T) {
	ev := New(4.0, 1, Contact{A: cup, B: table})

	require.True(t, ev.End(3.0))
	assert.Equal(t, 4.0, ev.EndTime)
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ev := New(0, 1, Contact{A: cup, B: table})
		require.False(t, seen[ev.ID])
		seen[ev.ID] = true
	}
}

func TestTooltip(t *testing.T) {
	ev := New(0, 1, SupportedBy{Supported: cup, Supporting: table})

	assert.Equal(t, "'O1','Cup','Id','Cup_1','O2','Table','Id','Table_1','Id','"+ev.ID+"'", ev.Tooltip())
}

func TestSlicingParticipants(t *testing.T) {
	knife := semantic.Entity{ID: "Knife_1", Class: "Knife"}
	hand := semantic.Entity{ID: "RH_1", Class: "RightHand"}
	bread := semantic.Entity{ID: "Bread_1", Class: "Bread"}

	d := Slicing{PerformedBy: hand, DeviceUsed: knife, ObjectActedOn: bread}
	assert.Len(t, d.Participants(), 3)

	d.OutputsCreated = semantic.Entity{ID: "Slice_1", Class: "BreadSlice"}
	assert.Len(t, d.Participants(), 4)
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		assert.NotEqual(t, "Unknown", k.String())
	}
	assert.Equal(t, "Unknown", Kind(99).String())
}
