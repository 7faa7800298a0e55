package event

import (
	"fmt"
	"strings"

	"semlog/app/util/ids"
)

// Event is a symbolic event with a start and, once closed, an end time.
type Event struct {
	ID        string
	StartTime float64
	EndTime   float64
	HasEnd    bool
	PairID    uint64
	Details   Details
}

// New creates an open event with a fresh globally unique id.
func New(start float64, pairID uint64, details Details) *Event {
	return &Event{
		ID:        ids.New(),
		StartTime: start,
		PairID:    pairID,
		Details:   details,
	}
}

func (e *Event) Kind() Kind {
	return e.Details.Kind()
}

func (e *Event) IsOpen() bool {
	return !e.HasEnd
}

// End closes the event at t. An end time earlier than the start is clamped
// to the start. Returns false if the event was already closed.
func (e *Event) End(t float64) bool {
	if e.HasEnd {
		return false
	}
	if t < e.StartTime {
		t = e.StartTime
	}

	e.EndTime = t
	e.HasEnd = true

	return true
}

func (e *Event) Duration() float64 {
	if !e.HasEnd {
		return 0
	}
	return e.EndTime - e.StartTime
}

// Context is a short label used for timelines.
func (e *Event) Context() string {
	return fmt.Sprintf("%s - %d", e.Kind(), e.PairID)
}

// Tooltip lists the participants as class/id pairs followed by the event id.
func (e *Event) Tooltip() string {
	var b strings.Builder

	for i, p := range e.Details.Participants() {
		fmt.Fprintf(&b, "'O%d','%s','Id','%s',", i+1, p.Class, p.ID)
	}
	fmt.Fprintf(&b, "'Id','%s'", e.ID)

	return b.String()
}

func (e *Event) String() string {
	end := "open"
	if e.HasEnd {
		end = fmt.Sprintf("%g", e.EndTime)
	}

	parts := make([]string, 0, 2)
	for _, p := range e.Details.Participants() {
		parts = append(parts, "["+p.String()+"]")
	}

	return fmt.Sprintf("%s Id:%s Start:%g End:%s PairId:%d %s",
		e.Kind(), e.ID, e.StartTime, end, e.PairID, strings.Join(parts, " "))
}
