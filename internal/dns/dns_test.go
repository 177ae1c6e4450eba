package dns

import (
	"context"
	"errors"
	"net"
	"testing"
)

func TestResolverInterface(t *testing.T) {
	var _ Resolver = (*ServerResolver)(nil)
	var _ Resolver = MockResolver{}
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(ResolverConfig{})

	if r.config.Timeout == 0 {
		t.Error("expected default timeout to be set")
	}
	if r.config.Retries == 0 {
		t.Error("expected default retries to be set")
	}
	if r.config.Server == "" {
		t.Error("expected a server to be set")
	}
}

func TestNewResolverAppendsPort(t *testing.T) {
	r := NewResolver(ResolverConfig{Server: "8.8.4.4"})
	if got, want := r.Config().Server, "8.8.4.4:53"; got != want {
		t.Errorf("Server = %q, want %q", got, want)
	}

	r = NewResolver(ResolverConfig{Server: "127.0.0.1:5353"})
	if got, want := r.Config().Server, "127.0.0.1:5353"; got != want {
		t.Errorf("Server = %q, want %q", got, want)
	}

	r = NewResolver(ResolverConfig{Server: "2001:4860:4860::8888"})
	if got, want := r.Config().Server, "[2001:4860:4860::8888]:53"; got != want {
		t.Errorf("Server = %q, want %q", got, want)
	}

	r = NewResolver(ResolverConfig{Server: "[2001:4860:4860::8888]:5353"})
	if got, want := r.Config().Server, "[2001:4860:4860::8888]:5353"; got != want {
		t.Errorf("Server = %q, want %q", got, want)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		isNotFound bool
		isTemp     bool
	}{
		{"not found", ErrNotFound, true, false},
		{"timeout", ErrTimeout, false, true},
		{"server failure", ErrServFail, false, true},
		{"refused", ErrRefused, false, false},
		{"nil", nil, false, false},
		{"unrelated", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.isNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.isNotFound)
			}
			if got := IsTemporary(tt.err); got != tt.isTemp {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.isTemp)
			}
		})
	}
}

func TestMockResolver(t *testing.T) {
	resolver := MockResolver{
		MX: map[string][]*net.MX{
			"example.com.": {{Host: "mx.example.com.", Pref: 10}},
		},
		TXT: map[string][]string{
			"example.com.": {"v=spf1 -all"},
		},
		Fail: []string{"txt broken.com."},
	}

	ctx := context.Background()

	mx, err := resolver.LookupMX(ctx, "example.com")
	if err != nil {
		t.Fatalf("LookupMX() error = %v", err)
	}
	if len(mx) != 1 || mx[0].Host != "mx.example.com." {
		t.Errorf("LookupMX() = %v", mx)
	}

	txt, err := resolver.LookupTXT(ctx, "example.com")
	if err != nil {
		t.Fatalf("LookupTXT() error = %v", err)
	}
	if len(txt) != 1 || txt[0] != "v=spf1 -all" {
		t.Errorf("LookupTXT() = %v", txt)
	}

	if _, err := resolver.LookupTXT(ctx, "missing.com"); !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := resolver.LookupTXT(ctx, "broken.com"); !errors.Is(err, ErrServFail) {
		t.Errorf("expected ErrServFail, got %v", err)
	}
}
