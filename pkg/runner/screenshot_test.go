package runner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add To Cart", "add_to_cart"},
		{"  spaced   out  ", "spaced_out"},
		{"Tabs\tand\nnewlines", "tabs_and_newlines"},
		{"lowercase", "lowercase"},
	}

	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFailureShotName(t *testing.T) {
	got := failureShotName("/specs/login_spec.yaml", "Successful Login")
	if got != "login_spec_successful_login.png" {
		t.Errorf("failureShotName = %q", got)
	}
}

func TestShotDirFor(t *testing.T) {
	if got := shotDirFor("/specs/login.yaml", ""); got != filepath.Join("/specs", "screenshots") {
		t.Errorf("default dir = %q", got)
	}
	if got := shotDirFor("/specs/login.yaml", "/tmp/override"); got != "/tmp/override" {
		t.Errorf("override dir = %q", got)
	}
}

func TestWriteScreenshotCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "screenshots")

	path, err := writeScreenshot(dir, "x.png", []byte("data"))
	if err != nil {
		t.Fatalf("writeScreenshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("content = %q", data)
	}
}
