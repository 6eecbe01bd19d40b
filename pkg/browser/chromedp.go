package browser

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// pollInterval is how often bounded waits re-check the page.
const pollInterval = 100 * time.Millisecond

// ChromeOptions configures the Chrome-backed engine.
type ChromeOptions struct {
	// Headless runs Chrome without a window. Interactive authoring
	// turns this off to watch scenarios execute.
	Headless bool
	// BaseURL resolves relative goto targets like "/login".
	BaseURL string
}

// ChromeEngine drives Chrome over the DevTools protocol via chromedp.
type ChromeEngine struct {
	opts ChromeOptions
}

// NewChromeEngine creates an engine; no browser starts until NewSession.
func NewChromeEngine(opts ChromeOptions) *ChromeEngine {
	return &ChromeEngine{opts: opts}
}

// NewSession launches a browser and opens one tab. The caller owns the
// session and must Close it.
func (e *ChromeEngine) NewSession(ctx context.Context) (Session, error) {
	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", e.opts.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Force the browser to start now so launch failures surface here
	// instead of on the first step.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &chromeSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		baseURL:     e.opts.BaseURL,
	}, nil
}

type chromeSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	baseURL     string
	closeOnce   sync.Once
}

var _ Session = (*chromeSession)(nil)

func (s *chromeSession) Navigate(ctx context.Context, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := resolveURL(s.baseURL, raw)
	if err != nil {
		return fmt.Errorf("navigate to %q: %w", raw, err)
	}
	if err := chromedp.Run(s.ctx, chromedp.Navigate(target)); err != nil {
		return fmt.Errorf("navigate to %q: %w", target, err)
	}
	return nil
}

func (s *chromeSession) ClickText(ctx context.Context, text string) error {
	js := actOnXPath(TextExpr(text), "el.click();")
	return s.evalStatus(ctx, js, fmt.Sprintf("click %q", text))
}

func (s *chromeSession) ClickSelector(ctx context.Context, selector string) error {
	js := actOnSelector(selector, "el.click();")
	return s.evalStatus(ctx, js, fmt.Sprintf("click selector %q", selector))
}

func (s *chromeSession) ClickRole(ctx context.Context, role, name string) error {
	js := actOnXPath(RoleExpr(role, name), "el.click();")
	return s.evalStatus(ctx, js, fmt.Sprintf("click %s %q", role, name))
}

func (s *chromeSession) Fill(ctx context.Context, selector, value string) error {
	js := actOnSelector(selector, setValueJS(value))
	return s.evalStatus(ctx, js, fmt.Sprintf("fill selector %q", selector))
}

func (s *chromeSession) FillLabel(ctx context.Context, label, value string) error {
	js := actOnXPath(LabelControlExpr(label), setValueJS(value))
	return s.evalStatus(ctx, js, fmt.Sprintf("fill field %q", label))
}

func (s *chromeSession) SelectOption(ctx context.Context, label, option string) error {
	body := fmt.Sprintf(`var want = %q;
	var opt = Array.prototype.find.call(el.options || [], function(o) {
		return o.value === want || o.text === want;
	});
	if (!opt) { return "nooption"; }
	el.value = opt.value;
	el.dispatchEvent(new Event('change', {bubbles: true}));`, option)
	js := actOnXPath(LabelControlExpr(label), body)
	return s.evalStatus(ctx, js, fmt.Sprintf("select %q in %q", option, label))
}

func (s *chromeSession) SetChecked(ctx context.Context, label string, checked bool) error {
	body := fmt.Sprintf(`el.checked = %t;
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));`, checked)
	js := actOnXPath(LabelControlExpr(label), body)
	return s.evalStatus(ctx, js, fmt.Sprintf("set %q checked=%t", label, checked))
}

func (s *chromeSession) HoverText(ctx context.Context, text string) error {
	body := `el.dispatchEvent(new MouseEvent('mouseover', {bubbles: true}));
	el.dispatchEvent(new MouseEvent('mouseenter', {bubbles: true}));`
	js := actOnXPath(TextExpr(text), body)
	return s.evalStatus(ctx, js, fmt.Sprintf("hover %q", text))
}

func (s *chromeSession) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chord, err := KeyChord(key)
	if err != nil {
		return err
	}
	if err := chromedp.Run(s.ctx, chromedp.KeyEvent(chord)); err != nil {
		return fmt.Errorf("press %q: %w", key, err)
	}
	return nil
}

func (s *chromeSession) WaitVisible(ctx context.Context, text string, timeout time.Duration) error {
	return s.waitVisibility(ctx, text, true, timeout)
}

func (s *chromeSession) WaitHidden(ctx context.Context, text string, timeout time.Duration) error {
	return s.waitVisibility(ctx, text, false, timeout)
}

func (s *chromeSession) waitVisibility(ctx context.Context, text string, wantVisible bool, timeout time.Duration) error {
	js := visibilityJS(TextExpr(text))
	deadline := time.Now().Add(timeout)

	for {
		var status string
		if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, &status)); err != nil {
			return fmt.Errorf("query visibility of %q: %w", text, err)
		}
		if (status == "visible") == wantVisible {
			return nil
		}
		if time.Now().After(deadline) {
			want := "visible"
			if !wantVisible {
				want = "hidden"
			}
			return fmt.Errorf("%q not %s within %s: %w", text, want, timeout, ErrTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (s *chromeSession) ButtonEnabled(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	js := fmt.Sprintf(`(function() {
	var el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) { return "notfound"; }
	return el.disabled ? "disabled" : "enabled";
})()`, RoleExpr("button", name))

	var status string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, &status)); err != nil {
		return false, fmt.Errorf("query button %q: %w", name, err)
	}
	switch status {
	case "enabled":
		return true, nil
	case "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("button %q: %w", name, ErrNotFound)
	}
}

func (s *chromeSession) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var loc string
	if err := chromedp.Run(s.ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

func (s *chromeSession) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

func (s *chromeSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
	})
	return err
}

// evalStatus runs a status-returning JS snippet and maps its result to
// the sentinel errors of this package.
func (s *chromeSession) evalStatus(ctx context.Context, js, desc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var status string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, &status)); err != nil {
		return fmt.Errorf("%s: %w", desc, err)
	}
	switch status {
	case "ok":
		return nil
	case "notfound":
		return fmt.Errorf("%s: %w", desc, ErrNotFound)
	case "nooption":
		return fmt.Errorf("%s: %w", desc, ErrOptionNotFound)
	default:
		return fmt.Errorf("%s: unexpected status %q", desc, status)
	}
}

// actOnXPath builds an IIFE that locates the first XPath match and runs
// body against it as `el`. Returns "notfound" when nothing matches;
// body must end by falling through to the trailing "ok".
func actOnXPath(expr, body string) string {
	return fmt.Sprintf(`(function() {
	var el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) { return "notfound"; }
	%s
	return "ok";
})()`, expr, body)
}

// actOnSelector is actOnXPath for CSS selectors.
func actOnSelector(selector, body string) string {
	return fmt.Sprintf(`(function() {
	var el = document.querySelector(%q);
	if (!el) { return "notfound"; }
	%s
	return "ok";
})()`, selector, body)
}

// setValueJS sets a control's value and fires the events frameworks
// listen for.
func setValueJS(value string) string {
	return fmt.Sprintf(`el.value = %q;
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));`, value)
}

// visibilityJS reports "visible", "hidden" or "notfound" for an XPath
// expression. An element counts as visible when it takes layout space.
func visibilityJS(expr string) string {
	return fmt.Sprintf(`(function() {
	var snap = document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
	for (var i = 0; i < snap.snapshotLength; i++) {
		var el = snap.snapshotItem(i);
		if (el.offsetWidth || el.offsetHeight || el.getClientRects().length) { return "visible"; }
	}
	return snap.snapshotLength ? "hidden" : "notfound";
})()`, expr)
}

// resolveURL resolves raw against base when raw is relative. An empty
// base returns raw unchanged.
func resolveURL(base, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.IsAbs() || base == "" {
		return raw, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("base url %q: %w", base, err)
	}
	return b.ResolveReference(u).String(), nil
}
