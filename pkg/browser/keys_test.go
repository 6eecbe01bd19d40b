package browser

import (
	"errors"
	"testing"
)

func TestKeyChordNamedKeys(t *testing.T) {
	for _, name := range []string{
		"Enter", "Tab", "Escape", "Backspace", "Delete",
		"Home", "End", "PageUp", "PageDown",
		"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
	} {
		chord, err := KeyChord(name)
		if err != nil {
			t.Errorf("KeyChord(%q): %v", name, err)
		}
		if chord == "" {
			t.Errorf("KeyChord(%q) returned empty chord", name)
		}
	}
}

func TestKeyChordSingleCharacter(t *testing.T) {
	for _, name := range []string{"a", "Z", "1", "ä"} {
		chord, err := KeyChord(name)
		if err != nil {
			t.Errorf("KeyChord(%q): %v", name, err)
		}
		if chord != name {
			t.Errorf("KeyChord(%q) = %q, want identity", name, chord)
		}
	}
}

func TestKeyChordUnknownName(t *testing.T) {
	_, err := KeyChord("SuperEnter")
	if !errors.Is(err, ErrBadKey) {
		t.Errorf("err = %v, want ErrBadKey", err)
	}
}
