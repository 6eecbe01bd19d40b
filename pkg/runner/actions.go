package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cgast/featspec/pkg/browser"
	"github.com/cgast/featspec/pkg/spec"
)

// stepEnv is the execution environment of one spec file: its browser
// session, its screenshot directory and the configured timeouts.
type stepEnv struct {
	session        browser.Session
	shotDir        string
	waitForTimeout time.Duration
	assertTimeout  time.Duration
}

// stepFunc translates one parsed step into exactly one call against
// the browser session.
type stepFunc func(ctx context.Context, env *stepEnv, st spec.Step) error

// dispatch is the closed action table. Adding an action means adding
// one entry here plus its ActionKind in pkg/spec; a lookup miss is an
// UnknownActionError at the scenario boundary.
var dispatch = map[spec.ActionKind]stepFunc{
	spec.ActionGoto:           doGoto,
	spec.ActionClick:          doClick,
	spec.ActionClickButton:    doClickButton,
	spec.ActionClickLink:      doClickLink,
	spec.ActionFill:           doFill,
	spec.ActionFillField:      doFillField,
	spec.ActionSelect:         doSelect,
	spec.ActionCheck:          doCheck,
	spec.ActionUncheck:        doUncheck,
	spec.ActionHover:          doHover,
	spec.ActionPress:          doPress,
	spec.ActionWait:           doWait,
	spec.ActionWaitFor:        doWaitFor,
	spec.ActionAssertVisible:  doAssertVisible,
	spec.ActionAssertHidden:   doAssertHidden,
	spec.ActionAssertURL:      doAssertURL,
	spec.ActionAssertEnabled:  doAssertEnabled,
	spec.ActionAssertDisabled: doAssertDisabled,
	spec.ActionScreenshot:     doScreenshot,
}

func doGoto(ctx context.Context, env *stepEnv, st spec.Step) error {
	if err := env.session.Navigate(ctx, st.Value); err != nil {
		return &EngineError{Op: "goto " + st.Value, Err: err}
	}
	return nil
}

func doClick(ctx context.Context, env *stepEnv, st spec.Step) error {
	if st.Selector != "" {
		return classifyLocate(fmt.Sprintf("selector %q", st.Selector),
			env.session.ClickSelector(ctx, st.Selector))
	}
	return classifyLocate(fmt.Sprintf("text %q", st.Value),
		env.session.ClickText(ctx, st.Value))
}

func doClickButton(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("button %q", st.Value),
		env.session.ClickRole(ctx, "button", st.Value))
}

func doClickLink(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("link %q", st.Value),
		env.session.ClickRole(ctx, "link", st.Value))
}

func doFill(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("selector %q", st.Selector),
		env.session.Fill(ctx, st.Selector, st.Value))
}

func doFillField(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("field %q", st.Label),
		env.session.FillLabel(ctx, st.Label, st.Value))
}

func doSelect(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("option %q of %q", st.Option, st.Label),
		env.session.SelectOption(ctx, st.Label, st.Option))
}

func doCheck(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("checkbox %q", st.Label),
		env.session.SetChecked(ctx, st.Label, true))
}

func doUncheck(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("checkbox %q", st.Label),
		env.session.SetChecked(ctx, st.Label, false))
}

func doHover(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("text %q", st.Value),
		env.session.HoverText(ctx, st.Value))
}

func doPress(ctx context.Context, env *stepEnv, st spec.Step) error {
	if err := env.session.Press(ctx, st.Value); err != nil {
		return &EngineError{Op: "press " + st.Value, Err: err}
	}
	return nil
}

// doWait pauses unconditionally; it is the one step that can never fail
// short of run cancellation.
func doWait(ctx context.Context, _ *stepEnv, st spec.Step) error {
	select {
	case <-time.After(time.Duration(st.Millis) * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func doWaitFor(ctx context.Context, env *stepEnv, st spec.Step) error {
	return classifyLocate(fmt.Sprintf("text %q", st.Value),
		env.session.WaitVisible(ctx, st.Value, env.waitForTimeout))
}

func doAssertVisible(ctx context.Context, env *stepEnv, st spec.Step) error {
	err := env.session.WaitVisible(ctx, st.Value, env.assertTimeout)
	if errors.Is(err, browser.ErrTimeout) {
		return &AssertionError{Message: fmt.Sprintf("expected %q to be visible", st.Value)}
	}
	if err != nil {
		return &EngineError{Op: "assert_visible " + st.Value, Err: err}
	}
	return nil
}

func doAssertHidden(ctx context.Context, env *stepEnv, st spec.Step) error {
	err := env.session.WaitHidden(ctx, st.Value, env.assertTimeout)
	if errors.Is(err, browser.ErrTimeout) {
		return &AssertionError{Message: fmt.Sprintf("expected %q to be hidden", st.Value)}
	}
	if err != nil {
		return &EngineError{Op: "assert_hidden " + st.Value, Err: err}
	}
	return nil
}

// doAssertURL is a synchronous, case-sensitive substring check with no
// normalization of either side.
func doAssertURL(ctx context.Context, env *stepEnv, st spec.Step) error {
	loc, err := env.session.Location(ctx)
	if err != nil {
		return &EngineError{Op: "read url", Err: err}
	}
	if !strings.Contains(loc, st.Value) {
		return &AssertionError{Message: fmt.Sprintf("url %q does not contain %q", loc, st.Value)}
	}
	return nil
}

func doAssertEnabled(ctx context.Context, env *stepEnv, st spec.Step) error {
	return assertButtonState(ctx, env, st.Value, true)
}

func doAssertDisabled(ctx context.Context, env *stepEnv, st spec.Step) error {
	return assertButtonState(ctx, env, st.Value, false)
}

func assertButtonState(ctx context.Context, env *stepEnv, name string, wantEnabled bool) error {
	enabled, err := env.session.ButtonEnabled(ctx, name)
	if errors.Is(err, browser.ErrNotFound) {
		return &LocatorError{Target: fmt.Sprintf("button %q", name), Err: err}
	}
	if err != nil {
		return &EngineError{Op: "query button " + name, Err: err}
	}
	if enabled != wantEnabled {
		state := "disabled"
		if wantEnabled {
			state = "enabled"
		}
		return &AssertionError{Message: fmt.Sprintf("expected button %q to be %s", name, state)}
	}
	return nil
}

// doScreenshot captures a full-page image under a caller-supplied name.
func doScreenshot(ctx context.Context, env *stepEnv, st spec.Step) error {
	png, err := env.session.Screenshot(ctx)
	if err != nil {
		return &EngineError{Op: "screenshot " + st.Value, Err: err}
	}
	if _, err := writeScreenshot(env.shotDir, slug(st.Value)+".png", png); err != nil {
		return &EngineError{Op: "screenshot " + st.Value, Err: err}
	}
	return nil
}
