package browser

import "testing"

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		raw  string
		want string
	}{
		{"http://app.test", "/login", "http://app.test/login"},
		{"http://app.test/", "/login", "http://app.test/login"},
		{"http://app.test", "https://other.test/x", "https://other.test/x"},
		{"", "https://other.test/x", "https://other.test/x"},
		{"", "/login", "/login"},
		{"http://app.test/sub/", "page", "http://app.test/sub/page"},
	}

	for _, tt := range tests {
		got, err := resolveURL(tt.base, tt.raw)
		if err != nil {
			t.Errorf("resolveURL(%q, %q): %v", tt.base, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.raw, got, tt.want)
		}
	}
}
