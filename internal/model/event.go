package model

import "time"

// EventKind tags which payload an Event carries.
type EventKind string

const (
	EventInputSource EventKind = "input_source"
	EventInputValue  EventKind = "input_value"
)

// Event is either an input source selection or a raw HID input value.
type Event struct {
	Kind   EventKind    `yaml:"type"             json:"type"`
	TS     int64        `yaml:"ts"               json:"ts"`
	Source *InputSource `yaml:"source,omitempty" json:"source,omitempty"`
	Value  *InputValue  `yaml:"value,omitempty"  json:"value,omitempty"`
}

// NewSourceEvent returns an event reporting that src became the current source.
func NewSourceEvent(src InputSource) Event {
	return Event{Kind: EventInputSource, TS: time.Now().Unix(), Source: &src}
}

// NewValueEvent returns an event carrying a HID input value.
func NewValueEvent(v InputValue) Event {
	return Event{Kind: EventInputValue, TS: time.Now().Unix(), Value: &v}
}
