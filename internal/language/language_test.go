package language

import (
	"testing"

	"golang.org/x/text/language"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pt", "pt"},
		{"PT", "pt"},
		{"pt-BR", "pt"},
		{"por", "pt"},
		{"portuguese", "pt"},
		{"en", "en"},
		{"eng", "en"},
		{"English", "en"},
		{"not a language", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCaseTagDefaultsToBrazilianPortuguese(t *testing.T) {
	if got := CaseTag("pt"); got != language.BrazilianPortuguese {
		t.Fatalf("expected pt-BR for bare pt, got %v", got)
	}
	if got := CaseTag(""); got != language.BrazilianPortuguese {
		t.Fatalf("expected pt-BR fallback, got %v", got)
	}
	if got := CaseTag("pt-PT"); got != language.EuropeanPortuguese {
		t.Fatalf("expected explicit region to survive, got %v", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("unexpected empty display name %q", got)
	}
	if got := DisplayName("x?"); got != "X?" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := DisplayName("en"); got != "English" {
		t.Fatalf("unexpected name %q", got)
	}
}
