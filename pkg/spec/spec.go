package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spec is one authored feature test file: a named feature with an
// ordered list of scenarios. It is the contract between a product
// manager's description of a user journey and the browser runner.
type Spec struct {
	Feature     string     `yaml:"feature"`
	Description string     `yaml:"description"`
	Status      Status     `yaml:"status"`
	Scenarios   []Scenario `yaml:"scenarios"`
}

// Scenario is one user journey: an ordered list of steps executed
// against a single page. Execution order is the listed order.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Status is the lifecycle marker of a spec. Active specs gate the
// build; draft specs document unbuilt features and may fail.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
)

// UnmarshalYAML rejects unknown status values rather than defaulting
// them silently. Absence of the field still defaults to draft (the
// zero value is normalized in Parse).
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch Status(raw) {
	case StatusDraft, StatusActive:
		*s = Status(raw)
		return nil
	default:
		return fmt.Errorf("line %d: unknown status %q (expected draft or active)", node.Line, raw)
	}
}

// ActionKind identifies one entry of the runner's dispatch table. The
// set is closed; names outside it survive parsing and are reported as
// unknown actions when the step executes.
type ActionKind string

const (
	ActionGoto           ActionKind = "goto"
	ActionClick          ActionKind = "click"
	ActionClickButton    ActionKind = "click_button"
	ActionClickLink      ActionKind = "click_link"
	ActionFill           ActionKind = "fill"
	ActionFillField      ActionKind = "fill_field"
	ActionSelect         ActionKind = "select"
	ActionCheck          ActionKind = "check"
	ActionUncheck        ActionKind = "uncheck"
	ActionHover          ActionKind = "hover"
	ActionPress          ActionKind = "press"
	ActionWait           ActionKind = "wait"
	ActionWaitFor        ActionKind = "wait_for"
	ActionAssertVisible  ActionKind = "assert_visible"
	ActionAssertHidden   ActionKind = "assert_hidden"
	ActionAssertURL      ActionKind = "assert_url"
	ActionAssertEnabled  ActionKind = "assert_enabled"
	ActionAssertDisabled ActionKind = "assert_disabled"
	ActionScreenshot     ActionKind = "screenshot"
)

// knownActions is the closed set of action names the parser decodes a
// payload for. The runner owns the authoritative dispatch table; this
// set must stay in sync with it.
var knownActions = map[ActionKind]bool{
	ActionGoto:           true,
	ActionClick:          true,
	ActionClickButton:    true,
	ActionClickLink:      true,
	ActionFill:           true,
	ActionFillField:      true,
	ActionSelect:         true,
	ActionCheck:          true,
	ActionUncheck:        true,
	ActionHover:          true,
	ActionPress:          true,
	ActionWait:           true,
	ActionWaitFor:        true,
	ActionAssertVisible:  true,
	ActionAssertHidden:   true,
	ActionAssertURL:      true,
	ActionAssertEnabled:  true,
	ActionAssertDisabled: true,
	ActionScreenshot:     true,
}

// Known reports whether k is in the supported action set.
func (k ActionKind) Known() bool { return knownActions[k] }

// Step is one action in a scenario, parsed from a single-key YAML
// mapping into a tagged value. Which fields are populated depends on
// Action: Value carries scalar payloads (URL, text, key name, screenshot
// name), Millis the wait duration, and Selector/Label/Option the record
// payloads of fill, fill_field, select and selector-clicks.
type Step struct {
	Action   ActionKind
	Value    string
	Millis   int
	Selector string
	Label    string
	Option   string
}

// UnmarshalYAML decodes the single-key step shape. A step with zero or
// more than one key is rejected at parse time; an unrecognized action
// name is kept so the runner can fail the scenario with the offending
// name instead of a silent no-op.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: step must be a mapping with exactly one action key", node.Line)
	}
	if len(node.Content) != 2 {
		return fmt.Errorf("line %d: step must have exactly one action key, got %d", node.Line, len(node.Content)/2)
	}

	var action string
	if err := node.Content[0].Decode(&action); err != nil {
		return fmt.Errorf("line %d: step action key: %w", node.Line, err)
	}
	s.Action = ActionKind(action)
	payload := node.Content[1]

	switch s.Action {
	case ActionWait:
		if err := payload.Decode(&s.Millis); err != nil {
			return fmt.Errorf("line %d: wait expects milliseconds: %w", payload.Line, err)
		}
		return nil

	case ActionClick:
		// Click takes either visible text or a {selector} record.
		if payload.Kind == yaml.ScalarNode {
			return payload.Decode(&s.Value)
		}
		var rec struct {
			Selector string `yaml:"selector"`
		}
		if err := payload.Decode(&rec); err != nil {
			return fmt.Errorf("line %d: click expects text or {selector}: %w", payload.Line, err)
		}
		// An empty selector would degenerate into a match-anything
		// text click downstream.
		if rec.Selector == "" {
			return fmt.Errorf("line %d: click selector must not be empty", payload.Line)
		}
		s.Selector = rec.Selector
		return nil

	case ActionFill:
		var rec struct {
			Selector string `yaml:"selector"`
			Value    string `yaml:"value"`
		}
		if err := payload.Decode(&rec); err != nil {
			return fmt.Errorf("line %d: fill expects {selector, value}: %w", payload.Line, err)
		}
		s.Selector, s.Value = rec.Selector, rec.Value
		return nil

	case ActionFillField:
		var rec struct {
			Label string `yaml:"label"`
			Value string `yaml:"value"`
		}
		if err := payload.Decode(&rec); err != nil {
			return fmt.Errorf("line %d: fill_field expects {label, value}: %w", payload.Line, err)
		}
		s.Label, s.Value = rec.Label, rec.Value
		return nil

	case ActionSelect:
		var rec struct {
			Label  string `yaml:"label"`
			Option string `yaml:"option"`
		}
		if err := payload.Decode(&rec); err != nil {
			return fmt.Errorf("line %d: select expects {label, option}: %w", payload.Line, err)
		}
		s.Label, s.Option = rec.Label, rec.Option
		return nil

	case ActionCheck, ActionUncheck:
		if err := payload.Decode(&s.Label); err != nil {
			return fmt.Errorf("line %d: %s expects a label: %w", payload.Line, s.Action, err)
		}
		return nil

	case ActionGoto, ActionClickButton, ActionClickLink, ActionHover, ActionPress,
		ActionWaitFor, ActionAssertVisible, ActionAssertHidden, ActionAssertURL,
		ActionAssertEnabled, ActionAssertDisabled, ActionScreenshot:
		if err := payload.Decode(&s.Value); err != nil {
			return fmt.Errorf("line %d: %s expects a string value: %w", payload.Line, s.Action, err)
		}
		return nil

	default:
		// Unknown action: the payload shape is unknowable, so it is
		// dropped. The runner reports the action name at execution time.
		return nil
	}
}
