package queue

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

type SignalType string

const (
	SignalBeginContact     SignalType = "begin_contact"
	SignalEndContact       SignalType = "end_contact"
	SignalBeginSupportedBy SignalType = "begin_supported_by"
	SignalEndSupportedBy   SignalType = "end_supported_by"
	SignalBeginShape       SignalType = "begin_shape_contact"
	SignalEndShape         SignalType = "end_shape_contact"
	SignalTrigger          SignalType = "trigger"
	SignalGraspType        SignalType = "grasp_type"
	SignalRecord           SignalType = "record"
	SignalFinish           SignalType = "finish"
)

// Signal is one raw simulation callback. Entities are referenced by their
// simulation handles and resolved by the engine.
type Signal struct {
	Type SignalType `json:"type" yaml:"type" validate:"required,oneof=begin_contact end_contact begin_supported_by end_supported_by begin_shape_contact end_shape_contact trigger grasp_type record finish"`
	Time float64    `json:"time" yaml:"time" validate:"gte=0"`
	// Handle of the reporting object, the supported object or the hand
	Self string `json:"self,omitempty" yaml:"self" validate:"required_unless=Type finish"`
	// Handle of the other object
	Other string `json:"other,omitempty" yaml:"other"`
	// Hand shape reporting a shape contact
	Shape string `json:"shape,omitempty" yaml:"shape"`
	// Trigger value
	Value float64 `json:"value,omitempty" yaml:"value"`
	// Grasp type, or the event kind of a recorded event
	Kind string `json:"kind,omitempty" yaml:"kind"`
	// Start time of a recorded event, Time is its end
	Start float64 `json:"start,omitempty" yaml:"start" validate:"gte=0"`
	// Additional participants of a recorded event
	Objects []string `json:"objects,omitempty" yaml:"objects"`
	Success bool     `json:"success,omitempty" yaml:"success"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (s Signal) Validate() error {
	if err := validate.Struct(s); err != nil {
		return oops.With("type", s.Type).Errorf("invalid signal: %w", err)
	}

	switch s.Type {
	case SignalBeginContact, SignalEndContact, SignalBeginSupportedBy, SignalEndSupportedBy:
		if s.Other == "" {
			return oops.With("type", s.Type).Errorf("signal needs the other object")
		}
	case SignalBeginShape, SignalEndShape:
		if s.Other == "" || s.Shape == "" {
			return oops.With("type", s.Type).Errorf("shape contact needs a shape and the other object")
		}
	case SignalRecord:
		if s.Kind == "" {
			return oops.With("type", s.Type).Errorf("recorded event needs a kind")
		}
		if s.Start > s.Time {
			return oops.With("start", s.Start, "end", s.Time).Errorf("recorded event ends before it starts")
		}
	}

	return nil
}
