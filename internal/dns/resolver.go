package dns

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// ResolverConfig contains configuration for the DNS resolver.
type ResolverConfig struct {
	// Server is the DNS server to query, as host or host:port.
	// Empty means the first system resolver from /etc/resolv.conf,
	// falling back to 8.8.8.8.
	Server string

	// Timeout is the timeout for individual DNS queries. Default is 5 seconds.
	Timeout time.Duration

	// Retries is the number of retries for failed queries. Default is 2.
	Retries int
}

// ServerResolver implements Resolver using github.com/miekg/dns, querying a
// single configurable server. The standard library resolver cannot be pointed
// at an arbitrary server address without a custom dialer, which is the whole
// reason this type exists.
type ServerResolver struct {
	config ResolverConfig
	client *mdns.Client
}

var _ Resolver = (*ServerResolver)(nil)

// NewResolver creates a resolver querying the configured server.
func NewResolver(config ResolverConfig) *ServerResolver {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Retries == 0 {
		config.Retries = 2
	}
	if config.Server == "" {
		config.Server = systemNameserver()
	}
	// SplitHostPort rejects bare addresses, including IPv6 ones, which a
	// naive colon check would mistake for host:port.
	if _, _, err := net.SplitHostPort(config.Server); err != nil {
		config.Server = net.JoinHostPort(strings.Trim(config.Server, "[]"), "53")
	}

	return &ServerResolver{
		config: config,
		client: &mdns.Client{
			Timeout: config.Timeout,
		},
	}
}

// systemNameserver returns the first server from resolv.conf, or a public
// fallback when the file is unreadable.
func systemNameserver() string {
	config, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return "8.8.8.8"
	}
	return config.Servers[0]
}

// query performs a DNS query with retries.
func (r *ServerResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, error) {
	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error

	for i := 0; i <= r.config.Retries; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, _, err := r.client.ExchangeContext(ctx, m, r.config.Server)
		if err != nil {
			if isTimeout(err) {
				lastErr = ErrTimeout
			} else {
				lastErr = fmt.Errorf("dns query failed: %w", err)
			}
			continue
		}

		switch resp.Rcode {
		case mdns.RcodeSuccess:
			return resp, nil
		case mdns.RcodeNameError: // NXDOMAIN
			return nil, ErrNotFound
		case mdns.RcodeServerFailure:
			lastErr = ErrServFail
			continue
		case mdns.RcodeRefused:
			lastErr = ErrRefused
			continue
		default:
			lastErr = fmt.Errorf("dns: unexpected rcode %d", resp.Rcode)
			continue
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrServFail
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

// LookupMX retrieves MX records for the given domain.
func (r *ServerResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	resp, err := r.query(ctx, name, mdns.TypeMX)
	if err != nil {
		return nil, err
	}

	var records []*net.MX
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, &net.MX{
				Host: mx.Mx,
				Pref: mx.Preference,
			})
		}
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// LookupTXT retrieves TXT records for the given name.
func (r *ServerResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	resp, err := r.query(ctx, name, mdns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var records []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*mdns.TXT); ok {
			// TXT records may be split into multiple character strings,
			// join them per RFC 7208 Section 3.3
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// Config returns the resolver's current configuration.
func (r *ServerResolver) Config() ResolverConfig {
	return r.config
}
