// Package render formats domain reports as a console table, CSV file or
// HTML document.
package render

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/customeros/mailposture/domainreport"
)

// Console writes reports to w as a table. The default view shows the summary
// columns; details adds the raw record text, DKIM selectors and authorized
// senders.
func Console(w io.Writer, reports []domainreport.DomainReport, details bool) {
	table := tablewriter.NewWriter(w)

	headers := []string{"Domain", "MX Record", "Mail Filter", "SPF", "DMARC"}
	if details {
		headers = append(headers, "SPF Record", "DMARC Record", "DKIM Selectors", "Authorized Senders")
	}
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, report := range reports {
		row := []string{
			report.Domain,
			report.MX,
			report.Filter,
			report.SPF,
			report.DMARC,
		}
		if details {
			row = append(row,
				report.SPFRecord,
				report.DMARCRecord,
				strings.Join(report.DKIMSelectors, ", "),
				formatSenders(report.AuthorizedSenders),
			)
		}
		table.Append(row)
	}

	table.Render()
}

func formatSenders(senders domainreport.AuthorizedSenders) string {
	var parts []string
	add := func(label string, names []string) {
		if len(names) > 0 {
			parts = append(parts, label+": "+strings.Join(names, ", "))
		}
	}
	add("enterprise", senders.Enterprise)
	add("hosting", senders.Hosting)
	add("security", senders.Security)
	add("webmail", senders.Webmail)
	add("other", senders.Other)
	return strings.Join(parts, "; ")
}
