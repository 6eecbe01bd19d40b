package runner

import (
	"errors"
	"fmt"

	"github.com/cgast/featspec/pkg/browser"
)

// UnknownActionError reports a step whose action name is outside the
// dispatch table. It always names the offending action.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Action)
}

// LocatorError reports that a step's target element was not found or
// did not reach the required state within the step's timeout.
type LocatorError struct {
	Target string
	Err    error
}

func (e *LocatorError) Error() string { return fmt.Sprintf("locate %s: %v", e.Target, e.Err) }
func (e *LocatorError) Unwrap() error { return e.Err }

// AssertionError reports that an explicit assertion step's condition
// was false.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return e.Message }

// EngineError reports an unrecoverable fault from the automation
// engine itself: navigation failure, browser crash, bad key name.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *EngineError) Unwrap() error { return e.Err }

// classifyLocate wraps a session error from a locate-and-act call:
// not-found and timeout conditions become LocatorError, anything else
// is an engine fault.
func classifyLocate(target string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, browser.ErrNotFound) ||
		errors.Is(err, browser.ErrOptionNotFound) ||
		errors.Is(err, browser.ErrTimeout) {
		return &LocatorError{Target: target, Err: err}
	}
	return &EngineError{Op: "locate " + target, Err: err}
}
