package syntax

import (
	"testing"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOk bool
		want   string
	}{
		{"Plain domain", "example.com", true, "example.com"},
		{"Uppercase", "EXAMPLE.COM", true, "example.com"},
		{"With scheme", "https://example.com", true, "example.com"},
		{"With scheme and path", "https://example.com/about", true, "example.com"},
		{"With www", "www.example.com", true, "example.com"},
		{"With trailing dot", "example.com.", true, "example.com"},
		{"Subdomain kept", "mail.example.com", true, "mail.example.com"},
		{"Accented characters", "exámple.com", true, "example.com"},
		{"Surrounding whitespace", "  example.com  ", true, "example.com"},
		{"Empty string", "", false, ""},
		{"No TLD", "example", false, ""},
		{"Leading dot", ".example.com", false, ""},
		{"Double dot", "example..com", false, ""},
		{"Space inside", "exa mple.com", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, got := NormalizeDomain(tt.input)
			if ok != tt.wantOk {
				t.Errorf("NormalizeDomain(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{"Valid domain", "example.com", true},
		{"Valid subdomain", "sub.example.com", true},
		{"Valid dashed", "example-domain.co.uk", true},
		{"Single label", "localhost", false},
		{"Trailing dot", "example.com.", false},
		{"Leading dash", "-example.com", false},
		{"Empty label", "example..com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDomain(tt.domain); got != tt.want {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestExtractRootDomain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Already root", "example.com", "example.com"},
		{"MX host", "mx1.example.com", "example.com"},
		{"Deep MX host", "mxa-001.eu.pphosted.com", "pphosted.com"},
		{"UK registrable", "mail.example.co.uk", "example.co.uk"},
		{"Trailing dot", "aspmx.l.google.com.", "google.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRootDomain(tt.input)
			if err != nil {
				t.Fatalf("ExtractRootDomain(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExtractRootDomain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
