package browser

import (
	"context"
	"errors"
	"time"
)

// Errors returned by Session implementations. The runner maps these to
// its own taxonomy, so every implementation must wrap them with
// fmt.Errorf("...: %w", ...) rather than inventing new sentinels.
var (
	// ErrNotFound means the locator matched no element on the page.
	ErrNotFound = errors.New("element not found")
	// ErrOptionNotFound means a select control was found but has no
	// option matching the requested value.
	ErrOptionNotFound = errors.New("option not found")
	// ErrTimeout means a bounded wait elapsed before its condition held.
	ErrTimeout = errors.New("timed out")
	// ErrBadKey means a press step named a key the engine cannot send.
	ErrBadKey = errors.New("unknown key name")
)

// Session is one open browser page. It is the complete capability set
// the runner needs from an automation engine; any engine exposing
// these primitives is substitutable. All blocking calls honor ctx.
type Session interface {
	// Navigate loads a URL. Relative URLs resolve against the engine's
	// configured base URL.
	Navigate(ctx context.Context, url string) error

	// ClickText clicks the first element whose visible text contains text.
	ClickText(ctx context.Context, text string) error
	// ClickSelector clicks the first element matching a CSS selector.
	ClickSelector(ctx context.Context, selector string) error
	// ClickRole clicks the first element with the given accessible role
	// ("button" or "link") and accessible name.
	ClickRole(ctx context.Context, role, name string) error

	// Fill sets the value of the first element matching a CSS selector.
	Fill(ctx context.Context, selector, value string) error
	// FillLabel sets the value of the form control associated with a label.
	FillLabel(ctx context.Context, label, value string) error
	// SelectOption chooses an option of the select associated with a label.
	SelectOption(ctx context.Context, label, option string) error
	// SetChecked sets the checked state of the checkbox associated with a label.
	SetChecked(ctx context.Context, label string, checked bool) error
	// HoverText hovers the first element whose visible text contains text.
	HoverText(ctx context.Context, text string) error
	// Press sends a keyboard key event to the focused element.
	Press(ctx context.Context, key string) error

	// WaitVisible blocks until an element containing text is visible,
	// returning ErrTimeout if the bound elapses first.
	WaitVisible(ctx context.Context, text string, timeout time.Duration) error
	// WaitHidden blocks until no element containing text is visible.
	WaitHidden(ctx context.Context, text string, timeout time.Duration) error

	// ButtonEnabled reports whether the button with the given accessible
	// name is enabled.
	ButtonEnabled(ctx context.Context, name string) (bool, error)
	// Location returns the page's current URL.
	Location(ctx context.Context) (string, error)
	// Screenshot captures a full-page PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the page and its browser resources. Safe to call once.
	Close() error
}

// Engine opens browser sessions. The runner opens exactly one session
// per spec file and closes it when that spec's scenarios complete.
type Engine interface {
	NewSession(ctx context.Context) (Session, error)
}
