// Package domainreport looks up the mail-related DNS records for a domain and
// classifies its mail-filter provider and email-authentication posture.
package domainreport

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/customeros/mailposture/internal/dns"
	"github.com/customeros/mailposture/internal/logger"
)

// DomainReport holds everything collected and derived for a single domain.
// Immutable once returned by Check.
type DomainReport struct {
	Domain            string
	MX                string
	MXRecords         []string
	Filter            string
	SPFRecord         string
	SPF               string
	DMARCRecord       string
	DMARC             string
	TXTRecords        []string
	DKIMSelectors     []string
	AuthorizedSenders AuthorizedSenders
	Recommendations   string
	Errors            []string
}

// Checker runs the lookup-and-classify pipeline against a resolver.
type Checker struct {
	resolver dns.Resolver
	log      logger.Logger
	senders  KnownSenders
}

func NewChecker(resolver dns.Resolver, log logger.Logger) *Checker {
	return &Checker{
		resolver: resolver,
		log:      log,
		senders:  knownSenders(),
	}
}

// Check collects MX, SPF, DMARC, DKIM and raw TXT data for one domain.
// Lookup failures never abort the check; they are logged, recorded in
// Errors, and the affected fields fall back to their sentinel labels.
func (c *Checker) Check(ctx context.Context, domain string) DomainReport {
	report := DomainReport{Domain: domain}

	mxRecords, err := c.resolver.LookupMX(ctx, domain)
	if err != nil && !dns.IsNotFound(err) {
		c.log.Warn("MX lookup failed", zap.String("domain", domain), zap.Error(err))
		report.Errors = append(report.Errors, fmt.Sprintf("MX lookup: %v", err))
	}
	report.MX, report.MXRecords = PrimaryMX(mxRecords)

	txtRecords, err := c.resolver.LookupTXT(ctx, domain)
	if err != nil && !dns.IsNotFound(err) {
		c.log.Warn("TXT lookup failed", zap.String("domain", domain), zap.Error(err))
		report.Errors = append(report.Errors, fmt.Sprintf("TXT lookup: %v", err))
	}
	report.TXTRecords = cleanTXTRecords(txtRecords)

	dmarcRecords, err := c.resolver.LookupTXT(ctx, "_dmarc."+domain)
	if err != nil && !dns.IsNotFound(err) {
		c.log.Warn("DMARC lookup failed", zap.String("domain", domain), zap.Error(err))
		report.Errors = append(report.Errors, fmt.Sprintf("DMARC lookup: %v", err))
	}

	report.Filter = ClassifyFilter(report.MX, domain)
	report.SPFRecord, report.SPF = ClassifySPF(report.TXTRecords)
	report.DMARCRecord, report.DMARC = ClassifyDMARC(cleanTXTRecords(dmarcRecords))
	report.DKIMSelectors = c.probeDKIM(ctx, domain)
	report.AuthorizedSenders = classifySenders(report.SPFRecord, c.senders)

	return report
}

// CheckAll checks every domain with at most workers lookups in flight.
// Results are positioned by input index, so output order always matches
// input order regardless of completion order. A failed domain still gets
// an entry, populated with sentinel values.
func (c *Checker) CheckAll(ctx context.Context, domains []string, workers int) []DomainReport {
	if workers < 1 {
		workers = 1
	}

	reports := make([]DomainReport, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, domain := range domains {
		i, domain := i, domain
		g.Go(func() error {
			reports[i] = c.Check(gctx, domain)
			return nil
		})
	}

	// Check never returns an error; domain failures degrade in-place.
	_ = g.Wait()

	return reports
}

// cleanTXTRecords strips surrounding quotes and collapses runs of whitespace.
func cleanTXTRecords(records []string) []string {
	cleaned := make([]string, 0, len(records))
	for _, record := range records {
		record = strings.Trim(record, "\"")
		record = strings.Join(strings.Fields(record), " ")
		if record != "" {
			cleaned = append(cleaned, record)
		}
	}
	return cleaned
}
