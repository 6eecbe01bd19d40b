package spec

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for a spec.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if no validation errors were found.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Error returns a combined error message from all validation errors.
func (r ValidationResult) Error() string {
	if r.Valid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks a parsed Spec for authoring mistakes the loader
// tolerates: missing names, empty payloads and actions outside the
// supported set. It backs the `featspec validate` subcommand; the
// runner itself only requires a parseable spec.
func Validate(s Spec) ValidationResult {
	var result ValidationResult
	addErr := func(field, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field: field, Message: fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(s.Feature) == "" {
		addErr("feature", "required")
	}
	// An explicitly empty list is legal; a missing key is not.
	if s.Scenarios == nil {
		addErr("scenarios", "required")
	}

	seen := make(map[string]bool)
	for i, sc := range s.Scenarios {
		field := fmt.Sprintf("scenarios[%d]", i)
		if strings.TrimSpace(sc.Name) == "" {
			addErr(field+".name", "required")
		} else if seen[sc.Name] {
			addErr(field+".name", "duplicate scenario name %q", sc.Name)
		} else {
			seen[sc.Name] = true
		}

		for j, st := range sc.Steps {
			stepField := fmt.Sprintf("%s.steps[%d]", field, j)
			for _, ve := range validateStep(st) {
				addErr(stepField, "%s", ve)
			}
		}
	}

	return result
}

// validateStep returns authoring problems with a single parsed step.
func validateStep(st Step) []string {
	var problems []string

	if !st.Action.Known() {
		problems = append(problems, fmt.Sprintf("unknown action %q", st.Action))
		return problems
	}

	switch st.Action {
	case ActionWait:
		if st.Millis < 0 {
			problems = append(problems, "wait duration must not be negative")
		}
	case ActionClick:
		if st.Value == "" && st.Selector == "" {
			problems = append(problems, "click requires text or a selector")
		}
	case ActionFill:
		if st.Selector == "" {
			problems = append(problems, "fill requires a selector")
		}
	case ActionFillField:
		if st.Label == "" {
			problems = append(problems, "fill_field requires a label")
		}
	case ActionSelect:
		if st.Label == "" {
			problems = append(problems, "select requires a label")
		}
		if st.Option == "" {
			problems = append(problems, "select requires an option")
		}
	case ActionCheck, ActionUncheck:
		if st.Label == "" {
			problems = append(problems, fmt.Sprintf("%s requires a label", st.Action))
		}
	default:
		if st.Value == "" {
			problems = append(problems, fmt.Sprintf("%s requires a value", st.Action))
		}
	}

	return problems
}
