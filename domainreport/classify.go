package domainreport

import (
	"net"
	"sort"
	"strings"
)

// Sentinel and label values surfaced in reports.
const (
	NoMXRecord = "No MX Record Found"

	FilterNone           = "None"
	FilterOther          = "Other"
	FilterProofpoint     = "Proofpoint"
	FilterExchangeOnline = "Exchange Online"
	FilterOutlook        = "Outlook.com"
	FilterMimecast       = "Mimecast"
	FilterSophos         = "Sophos"
	FilterInternal       = "Internal email server"
	FilterBarracuda      = "Barracuda"
	FilterGoogle         = "Google"
	FilterGoDaddy        = "GoDaddy"

	SPFNoRecord = "MISCONFIGURATION: No SPF record."
	SPFMultiple = "MISCONFIGURATION: Multiple SPF records."
	SPFSoftFail = "SoftFail mode"
	SPFHardFail = "HardFail mode"

	DMARCNoRecord   = "MISCONFIGURATION: No DMARC record."
	DMARCMultiple   = "MISCONFIGURATION: Multiple DMARC records."
	DMARCInvalid    = "MISCONFIGURATION: Invalid DMARC record."
	DMARCReject     = "Reject mode"
	DMARCQuarantine = "Quarantine mode"
	DMARCReportOnly = "Reporting only mode"
)

// PrimaryMX returns the lowest-preference exchanger and all exchangers in
// preference order, lowercased with trailing dots stripped. Duplicate lowest
// preferences are broken by first-encountered order; the stable sort keeps
// whatever order the resolver answered in.
func PrimaryMX(mxRecords []*net.MX) (primary string, all []string) {
	if len(mxRecords) == 0 {
		return NoMXRecord, nil
	}

	sorted := make([]*net.MX, len(mxRecords))
	copy(sorted, mxRecords)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pref < sorted[j].Pref
	})

	stripDot := func(s string) string {
		return strings.ToLower(strings.TrimSuffix(s, "."))
	}

	all = make([]string, len(sorted))
	for i, mx := range sorted {
		all[i] = stripDot(mx.Host)
	}

	return all[0], all
}

// filterRule labels the mail filter when its substring matches the MX target.
type filterRule struct {
	label    string
	contains string
}

// filterRules is evaluated in order with later matches overwriting earlier
// ones. The order is load-bearing: the internal-server rule is keyed on the
// scanned domain itself and must not displace an Exchange Online match, and
// the generic "google" match sits late so hosted domains still label as
// Google when nothing more specific hit.
var filterRules = []filterRule{
	{FilterProofpoint, "pphosted"},
	{FilterExchangeOnline, "mail.protection.outlook.com"},
	{FilterOutlook, "olc.protection.outlook.com"},
	{FilterMimecast, "mimecast"},
	{FilterSophos, "sophos"},
	{FilterInternal, ""}, // matched against the domain, not a fixed substring
	{FilterBarracuda, "barracuda"},
	{FilterGoogle, "google"},
	{FilterGoDaddy, "secureserver.net"},
}

// ClassifyFilter labels the mail-filter provider from the primary MX target.
func ClassifyFilter(primaryMX, domain string) string {
	if primaryMX == "" || primaryMX == NoMXRecord {
		return FilterNone
	}

	mx := strings.ToLower(primaryMX)
	domain = strings.ToLower(domain)
	label := FilterOther

	for _, rule := range filterRules {
		if rule.label == FilterInternal {
			// A company's own Exchange Online MX also contains the company
			// domain; the internal rule must not override that match.
			if label != FilterExchangeOnline && domain != "" && strings.Contains(mx, domain) {
				label = FilterInternal
			}
			continue
		}
		if strings.Contains(mx, rule.contains) {
			label = rule.label
		}
	}

	return label
}

// ClassifySPF inspects the apex TXT records and returns the SPF record text
// (if exactly one exists) and the enforcement label. Zero or multiple SPF
// records are misconfigurations carried in the label; a single record with
// neither ~all nor -all leaves the label empty.
func ClassifySPF(txtRecords []string) (record, label string) {
	var spfRecords []string
	for _, txt := range txtRecords {
		if strings.Contains(txt, "spf1") {
			spfRecords = append(spfRecords, txt)
		}
	}

	switch len(spfRecords) {
	case 0:
		return "", SPFNoRecord
	case 1:
		record = spfRecords[0]
		switch {
		case strings.Contains(record, "~all"):
			return record, SPFSoftFail
		case strings.Contains(record, "-all"):
			return record, SPFHardFail
		default:
			return record, ""
		}
	default:
		return "", SPFMultiple
	}
}

// ClassifyDMARC inspects the TXT records found at _dmarc.<domain> and returns
// the DMARC record text (if exactly one exists) and the policy label. A single
// record with no recognizable p= policy is reported as invalid.
func ClassifyDMARC(txtRecords []string) (record, label string) {
	var dmarcRecords []string
	for _, txt := range txtRecords {
		if strings.Contains(strings.ToUpper(txt), "DMARC1") {
			dmarcRecords = append(dmarcRecords, txt)
		}
	}

	switch len(dmarcRecords) {
	case 0:
		return "", DMARCNoRecord
	case 1:
		record = strings.TrimSpace(dmarcRecords[0])
		if record == "" {
			return "", DMARCInvalid
		}
		switch dmarcPolicy(record) {
		case "reject":
			return record, DMARCReject
		case "quarantine":
			return record, DMARCQuarantine
		case "none":
			return record, DMARCReportOnly
		default:
			return record, DMARCInvalid
		}
	default:
		return "", DMARCMultiple
	}
}

// dmarcPolicy extracts the value of the p= tag. Tags are matched on their
// exact key so sp= (the subdomain policy) never counts as the domain policy.
func dmarcPolicy(record string) string {
	for _, tag := range strings.Split(record, ";") {
		kv := strings.SplitN(tag, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.ToLower(strings.TrimSpace(kv[0])) == "p" {
			return strings.ToLower(strings.TrimSpace(kv[1]))
		}
	}
	return ""
}
