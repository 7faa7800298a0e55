package timeline

import (
	"os"
	"testing"

	"semlog/app/event"
	"semlog/app/semantic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSplitsByKind(t *testing.T) {
	cup := semantic.Entity{ID: "Cup_1", Class: "Cup"}
	table := semantic.Entity{ID: "Table_1", Class: "Table"}
	hand := semantic.Entity{ID: "LH_1", Class: "LeftHand"}

	events := []event.Event{
		{ID: "c1", StartTime: 2, EndTime: 5, HasEnd: true, PairID: 7, Details: event.Contact{A: cup, B: table}},
		{ID: "g1", StartTime: 3, EndTime: 4, HasEnd: true, PairID: 8, Details: event.Grasp{Hand: hand, Other: cup}},
		{ID: "c2", StartTime: 6, EndTime: 9, HasEnd: true, PairID: 7, Details: event.Contact{A: cup, B: table}},
	}

	w := NewWriter(t.TempDir())
	require.NoError(t, w.Write("Episode_01", events))

	contacts, err := Read(w.Path("Episode_01", event.KindContact))
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, Entry{
		ID:      "c1",
		Kind:    "Contact",
		Context: "Contact - 7",
		Tooltip: "'O1','Cup','Id','Cup_1','O2','Table','Id','Table_1','Id','c1'",
		Start:   2,
		End:     5,
		PairID:  7,
	}, contacts[0])
	assert.Equal(t, "c2", contacts[1].ID)

	grasps, err := Read(w.Path("Episode_01", event.KindGrasp))
	require.NoError(t, err)
	require.Len(t, grasps, 1)

	_, err = os.Stat(w.Path("Episode_01", event.KindSupportedBy))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteEmptyEpisode(t *testing.T) {
	assert.Error(t, NewWriter(t.TempDir()).Write("", nil))
}

func TestReadMissing(t *testing.T) {
	_, err := Read("does/not/exist.jsonl")
	assert.Error(t, err)
}
