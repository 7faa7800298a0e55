package event

import "semlog/app/semantic"

// Details is the variant specific part of an event. The set of
// implementations is closed to this package.
type Details interface {
	Kind() Kind
	Participants() []semantic.Entity
	isDetails()
}

type Contact struct {
	A semantic.Entity
	B semantic.Entity
}

func (Contact) Kind() Kind                        { return KindContact }
func (d Contact) Participants() []semantic.Entity { return []semantic.Entity{d.A, d.B} }
func (Contact) isDetails()                        {}

type SupportedBy struct {
	Supported  semantic.Entity
	Supporting semantic.Entity
}

func (SupportedBy) Kind() Kind { return KindSupportedBy }
func (d SupportedBy) Participants() []semantic.Entity {
	return []semantic.Entity{d.Supported, d.Supporting}
}
func (SupportedBy) isDetails() {}

type Grasp struct {
	Hand      semantic.Entity
	Other     semantic.Entity
	GraspType string
}

func (Grasp) Kind() Kind                        { return KindGrasp }
func (d Grasp) Participants() []semantic.Entity { return []semantic.Entity{d.Hand, d.Other} }
func (Grasp) isDetails()                        {}

type PreGraspPositioning struct {
	Manipulator semantic.Entity
	Individual  semantic.Entity
}

func (PreGraspPositioning) Kind() Kind { return KindPreGraspPositioning }
func (d PreGraspPositioning) Participants() []semantic.Entity {
	return []semantic.Entity{d.Manipulator, d.Individual}
}
func (PreGraspPositioning) isDetails() {}

type PutDown struct {
	Manipulator semantic.Entity
	Individual  semantic.Entity
}

func (PutDown) Kind() Kind { return KindPutDown }
func (d PutDown) Participants() []semantic.Entity {
	return []semantic.Entity{d.Manipulator, d.Individual}
}
func (PutDown) isDetails() {}

// Slicing has no detector yet; it can be recorded through the aggregator.
type Slicing struct {
	PerformedBy    semantic.Entity
	DeviceUsed     semantic.Entity
	ObjectActedOn  semantic.Entity
	OutputsCreated semantic.Entity
	TaskSuccess    bool
}

func (Slicing) Kind() Kind { return KindSlicing }
func (d Slicing) Participants() []semantic.Entity {
	out := []semantic.Entity{d.PerformedBy, d.DeviceUsed, d.ObjectActedOn}
	if d.OutputsCreated.IsSet() {
		out = append(out, d.OutputsCreated)
	}
	return out
}
func (Slicing) isDetails() {}
