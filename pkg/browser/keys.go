package browser

import (
	"fmt"
	"unicode/utf8"

	"github.com/chromedp/chromedp/kb"
)

// namedKeys maps the key names spec authors write to the rune
// sequences the DevTools input domain expects.
var namedKeys = map[string]string{
	"Enter":      kb.Enter,
	"Tab":        kb.Tab,
	"Escape":     kb.Escape,
	"Backspace":  kb.Backspace,
	"Delete":     kb.Delete,
	"Home":       kb.Home,
	"End":        kb.End,
	"PageUp":     kb.PageUp,
	"PageDown":   kb.PageDown,
	"ArrowUp":    kb.ArrowUp,
	"ArrowDown":  kb.ArrowDown,
	"ArrowLeft":  kb.ArrowLeft,
	"ArrowRight": kb.ArrowRight,
}

// KeyChord resolves a key name from a press step. Single characters
// are sent as-is; multi-character names must be in the named set.
func KeyChord(name string) (string, error) {
	if chord, ok := namedKeys[name]; ok {
		return chord, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadKey, name)
}
