package manpage

import (
	"strings"
	"testing"
)

func TestGenerate_ValidRoff(t *testing.T) {
	page := Generate("0.1.0", "abc1234", "2026-02-06")

	// Must start with .TH header.
	if !strings.HasPrefix(page, ".TH PORT-PULSE 1") {
		t.Errorf("man page should start with .TH header, got: %s", page[:80])
	}

	// Must contain all required sections.
	requiredSections := []string{
		".SH NAME",
		".SH SYNOPSIS",
		".SH DESCRIPTION",
		".SH OPTIONS",
		".SH KEYBINDINGS",
		".SH CONFIGURATION",
		".SH FILES",
		".SH EXAMPLES",
		".SH ENVIRONMENT",
		".SH EXIT STATUS",
		".SH SEE ALSO",
		".SH AUTHORS",
		".SH BUGS",
		".SH VERSION",
	}

	for _, section := range requiredSections {
		if !strings.Contains(page, section) {
			t.Errorf("man page missing required section: %s", section)
		}
	}
}

func TestGenerate_ContainsVersion(t *testing.T) {
	page := Generate("1.2.3", "deadbeef", "2026-02-06")

	if !strings.Contains(page, "1.2.3") {
		t.Error("man page should contain the version string")
	}
	if !strings.Contains(page, "deadbeef") {
		t.Error("man page should contain the commit hash")
	}
}

func TestGenerate_ContainsAllFlags(t *testing.T) {
	page := Generate("0.1.0", "dev", "unknown")

	expectedFlags := []string{
		"port",
		"watch",
		"interval",
		"insights",
		"config",
		"verbose",
		"man",
		"version",
	}

	for _, flag := range expectedFlags {
		if !strings.Contains(page, flag) {
			t.Errorf("man page missing flag: %s", flag)
		}
	}
}

func TestRoffEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"port-pulse", `port\-pulse`},
		{"v1.2.0", `v1\&.2\&.0`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := roffEscape(tt.in); got != tt.want {
			t.Errorf("roffEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
