package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/cgast/featspec/pkg/browser"
)

// fakeSession is a scripted in-memory page. Element presence is driven
// by the missing/visible/disabled maps; every call is recorded so
// tests can assert what did and did not execute.
type fakeSession struct {
	calls    []string
	url      string
	fields   map[string]string
	checked  map[string]bool
	visible  map[string]bool
	missing  map[string]bool
	disabled map[string]bool
	shot     []byte
	shotErr  error
	navErr   error
	closed   int

	// afterClickRole lets a test script page reactions to a click,
	// e.g. showing "Welcome" after a submit.
	afterClickRole func(f *fakeSession, role, name string)
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		fields:   map[string]string{},
		checked:  map[string]bool{},
		visible:  map[string]bool{},
		missing:  map[string]bool{},
		disabled: map[string]bool{},
		shot:     []byte("fake png"),
	}
}

var _ browser.Session = (*fakeSession)(nil)

func (f *fakeSession) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSession) called(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeSession) notFound(target string) error {
	return fmt.Errorf("%s: %w", target, browser.ErrNotFound)
}

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	f.record("goto %s", url)
	if f.navErr != nil {
		return f.navErr
	}
	f.url = url
	return nil
}

func (f *fakeSession) ClickText(_ context.Context, text string) error {
	f.record("click %s", text)
	if f.missing[text] {
		return f.notFound(text)
	}
	return nil
}

func (f *fakeSession) ClickSelector(_ context.Context, selector string) error {
	f.record("click-selector %s", selector)
	if f.missing[selector] {
		return f.notFound(selector)
	}
	return nil
}

func (f *fakeSession) ClickRole(_ context.Context, role, name string) error {
	f.record("click-%s %s", role, name)
	if f.missing[name] {
		return f.notFound(name)
	}
	if f.afterClickRole != nil {
		f.afterClickRole(f, role, name)
	}
	return nil
}

func (f *fakeSession) Fill(_ context.Context, selector, value string) error {
	f.record("fill %s", selector)
	if f.missing[selector] {
		return f.notFound(selector)
	}
	f.fields[selector] = value
	return nil
}

func (f *fakeSession) FillLabel(_ context.Context, label, value string) error {
	f.record("fill-label %s", label)
	if f.missing[label] {
		return f.notFound(label)
	}
	f.fields[label] = value
	return nil
}

func (f *fakeSession) SelectOption(_ context.Context, label, option string) error {
	f.record("select %s=%s", label, option)
	if f.missing[label] {
		return f.notFound(label)
	}
	if f.missing[option] {
		return fmt.Errorf("%s: %w", option, browser.ErrOptionNotFound)
	}
	f.fields[label] = option
	return nil
}

func (f *fakeSession) SetChecked(_ context.Context, label string, checked bool) error {
	f.record("check %s=%t", label, checked)
	if f.missing[label] {
		return f.notFound(label)
	}
	f.checked[label] = checked
	return nil
}

func (f *fakeSession) HoverText(_ context.Context, text string) error {
	f.record("hover %s", text)
	if f.missing[text] {
		return f.notFound(text)
	}
	return nil
}

func (f *fakeSession) Press(_ context.Context, key string) error {
	f.record("press %s", key)
	if _, err := browser.KeyChord(key); err != nil {
		return err
	}
	return nil
}

func (f *fakeSession) WaitVisible(_ context.Context, text string, timeout time.Duration) error {
	f.record("wait-visible %s", text)
	if f.visible[text] {
		return nil
	}
	return fmt.Errorf("%q not visible within %s: %w", text, timeout, browser.ErrTimeout)
}

func (f *fakeSession) WaitHidden(_ context.Context, text string, timeout time.Duration) error {
	f.record("wait-hidden %s", text)
	if !f.visible[text] {
		return nil
	}
	return fmt.Errorf("%q not hidden within %s: %w", text, timeout, browser.ErrTimeout)
}

func (f *fakeSession) ButtonEnabled(_ context.Context, name string) (bool, error) {
	f.record("button-enabled %s", name)
	if f.missing[name] {
		return false, f.notFound(name)
	}
	return !f.disabled[name], nil
}

func (f *fakeSession) Location(_ context.Context) (string, error) {
	f.record("location")
	return f.url, nil
}

func (f *fakeSession) Screenshot(_ context.Context) ([]byte, error) {
	f.record("screenshot")
	if f.shotErr != nil {
		return nil, f.shotErr
	}
	return f.shot, nil
}

func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

// fakeEngine hands out one scripted session per NewSession call.
type fakeEngine struct {
	make     func() *fakeSession
	err      error
	sessions []*fakeSession
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{make: newFakeSession}
}

var _ browser.Engine = (*fakeEngine)(nil)

func (e *fakeEngine) NewSession(_ context.Context) (browser.Session, error) {
	if e.err != nil {
		return nil, e.err
	}
	s := e.make()
	e.sessions = append(e.sessions, s)
	return s, nil
}

func (e *fakeEngine) last() *fakeSession {
	if len(e.sessions) == 0 {
		return nil
	}
	return e.sessions[len(e.sessions)-1]
}
