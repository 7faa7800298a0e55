package owl

import (
	"log/slog"

	"semlog/app/event"
	"semlog/app/semantic"
)

// EventNode maps a closed event to its event individual.
func EventNode(ev event.Event) (Node, bool) {
	var node Node

	switch d := ev.Details.(type) {
	case event.Contact:
		node = EventIndividual(ev.ID, "TouchingSituation")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			InContactProperty(d.A.ID), InContactProperty(d.B.ID))
	case event.SupportedBy:
		node = EventIndividual(ev.ID, "SupportedBySituation")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			IsSupportedProperty(d.Supported.ID), SupportsProperty(d.Supporting.ID))
	case event.Grasp:
		node = EventIndividual(ev.ID, "GraspingSomething")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			PerformedByProperty(d.Hand.ID), ObjectActedOnProperty(d.Other.ID))
		if d.GraspType != "" {
			node.Add(GraspTypeProperty(d.GraspType))
		}
	case event.PreGraspPositioning:
		node = EventIndividual(ev.ID, "PreGraspPositioning")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			PerformedByProperty(d.Manipulator.ID), ObjectActedOnProperty(d.Individual.ID))
	case event.PutDown:
		node = EventIndividual(ev.ID, "PutDownSituation")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			PerformedByProperty(d.Manipulator.ID), ObjectActedOnProperty(d.Individual.ID))
	case event.Slicing:
		node = EventIndividual(ev.ID, "SlicingSomething")
		node.Add(StartTimeProperty(ev.StartTime), EndTimeProperty(ev.EndTime),
			PerformedByProperty(d.PerformedBy.ID), DeviceUsedProperty(d.DeviceUsed.ID),
			ObjectActedOnProperty(d.ObjectActedOn.ID))
		if d.OutputsCreated.IsSet() {
			node.Add(OutputsCreatedProperty(d.OutputsCreated.ID))
		}
		node.Add(TaskSuccessProperty(d.TaskSuccess))
	default:
		return Node{}, false
	}

	return node, true
}

// AddEvent registers the timepoints and objects of a closed event and
// appends its event individual. Open events are rejected.
func (d *Document) AddEvent(ev event.Event) bool {
	if d.experimentAdded {
		slog.Warn("Event added to a finalized document", "event", ev.ID)
		return false
	}
	if !ev.HasEnd {
		slog.Warn("Open event cannot be added to the document", "event", ev.ID)
		return false
	}

	node, ok := EventNode(ev)
	if !ok {
		slog.Warn("Event has no document representation", "event", ev.ID)
		return false
	}

	d.AddTimepointIndividual(ev.StartTime, TimepointIndividual(ev.StartTime))
	d.AddTimepointIndividual(ev.EndTime, TimepointIndividual(ev.EndTime))
	for _, p := range ev.Details.Participants() {
		d.addEntity(p)
	}

	d.AddIndividual(node)
	d.eventIDs = append(d.eventIDs, ev.ID)

	return true
}

func (d *Document) addEntity(e semantic.Entity) {
	if !e.IsSet() {
		return
	}
	d.AddObjectIndividual(e.ID, ObjectIndividual(e.ID, e.Class))
}
