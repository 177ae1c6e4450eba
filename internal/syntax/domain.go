package syntax

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var domainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// NormalizeDomain lowercases the input, strips any URL scheme, path and
// leading "www.", converts accented characters to ASCII, and validates the
// result. ok is false when the input cannot be turned into a usable domain.
func NormalizeDomain(input string) (ok bool, domain string) {
	domain = convertToAscii(strings.TrimSpace(input))

	if strings.Contains(domain, "://") {
		u, err := url.Parse(domain)
		if err != nil {
			return false, ""
		}
		domain = u.Hostname()
	}

	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimSuffix(domain, ".")

	if !IsValidDomain(domain) {
		return false, ""
	}
	return true, domain
}

// IsValidDomain reports whether domain is a plausible registrable DNS name.
func IsValidDomain(domain string) bool {
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) < 2 {
		return false
	}

	for _, part := range domainParts {
		if len(part) == 0 || len(part) > 63 {
			return false
		}
	}

	if !domainRegex.MatchString(domain) {
		return false
	}

	tld, _ := publicsuffix.PublicSuffix(domain)
	if tld == "" {
		return false
	}

	return strings.HasSuffix(domain, "."+tld) || domain == tld
}

// ExtractRootDomain returns the registrable domain (eTLD+1) of fullDomain.
// MX targets like "mx1.eu.example-host.co.uk" reduce to "example-host.co.uk".
func ExtractRootDomain(fullDomain string) (string, error) {
	domain := fullDomain
	if strings.Contains(fullDomain, "://") {
		u, err := url.Parse(fullDomain)
		if err != nil {
			return "", fmt.Errorf("failed to parse URL: %v", err)
		}
		domain = u.Hostname()
	}

	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimSuffix(domain, ".")

	// If the domain is already in its simplest form, return it
	if !strings.Contains(domain, ".") ||
		len(strings.Split(domain, ".")) == 2 {
		return domain, nil
	}

	_, icann := publicsuffix.PublicSuffix(domain)
	if !icann {
		return domain, nil
	}

	// Try to get eTLD+1, if it fails, return original domain
	registrableDomain, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain, nil
	}
	return registrableDomain, nil
}

func convertToAscii(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, input)

	ascii := make([]rune, 0, len(result))
	for _, r := range result {
		if r <= unicode.MaxASCII {
			ascii = append(ascii, r)
		}
	}

	return strings.ToLower(string(ascii))
}
