package events

import "time"

// Type identifies the kind of event emitted during a run.
type Type string

const (
	TypeRunStart     Type = "run.start"
	TypeRunEnd       Type = "run.end"
	TypeSpecLoaded   Type = "spec.loaded"
	TypeSpecError    Type = "spec.error"
	TypeScenarioPass Type = "scenario.pass"
	TypeScenarioFail Type = "scenario.fail"
	TypeStepStart    Type = "step.start"
	TypeStepEnd      Type = "step.end"
	TypeScreenshot   Type = "screenshot.saved"
)

// Event is one entry in a run's trace. Spec, Scenario and Action are
// filled as far as the event's scope reaches; Detail carries the error
// message or artifact path where one exists.
type Event struct {
	Type      Type          `json:"type"`
	RunID     string        `json:"run_id"`
	Timestamp time.Time     `json:"timestamp"`
	Spec      string        `json:"spec,omitempty"`
	Scenario  string        `json:"scenario,omitempty"`
	Action    string        `json:"action,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// Publisher is the narrow interface the runner emits through, keeping
// it decoupled from the bus implementation.
type Publisher interface {
	Publish(e Event)
}
