package browser

import (
	"strings"
	"testing"
)

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sign In", "'Sign In'"},
		{"it's here", `"it's here"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "both"`, `concat('it', "'", 's "both"')`},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := XPathLiteral(tt.in); got != tt.want {
			t.Errorf("XPathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTextExpr(t *testing.T) {
	got := TextExpr("Welcome")
	if !strings.Contains(got, "'Welcome'") {
		t.Errorf("TextExpr missing quoted text: %s", got)
	}
	if !strings.Contains(got, "text()") {
		t.Errorf("TextExpr must match own text nodes: %s", got)
	}
}

func TestRoleExpr(t *testing.T) {
	if got := RoleExpr("button", "Save"); !strings.Contains(got, "//button[") {
		t.Errorf("button role expr = %s", got)
	}
	if got := RoleExpr("link", "Home"); !strings.Contains(got, "//a[") {
		t.Errorf("link role expr = %s", got)
	}
	// Unsupported roles match nothing instead of erroring.
	if got := RoleExpr("menu", "File"); got != "//*[false()]" {
		t.Errorf("unsupported role expr = %s", got)
	}
}

func TestLabelControlExpr(t *testing.T) {
	got := LabelControlExpr("Email")
	for _, frag := range []string{"//input[@id", "//textarea", "//select", "//label["} {
		if !strings.Contains(got, frag) {
			t.Errorf("LabelControlExpr missing %s: %s", frag, got)
		}
	}
}
