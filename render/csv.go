package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/customeros/mailposture/domainreport"
)

// csvHeader is the column layout of exported reports. Kept in sync with
// csvRow and the round-trip expectations in csv_test.go.
var csvHeader = []string{
	"Domain",
	"MXRecord",
	"MailFilter",
	"SPFRecord",
	"SPF",
	"DMARCRecord",
	"DMARC",
	"DKIMSelectors",
	"TXTRecords",
	"AuthorizedSenders",
	"Errors",
}

// CSVPath builds the export path from the configured location and filename.
// An empty location means the invoking user's home directory; an empty
// filename derives one from the domain list and a timestamp.
func CSVPath(location, filename string, domains []string, now time.Time) (string, error) {
	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "unable to determine home directory")
		}
		location = home
	}

	if filename == "" {
		joined := strings.Join(domains, "-")
		if len(joined) > 80 {
			joined = joined[:80]
		}
		filename = fmt.Sprintf("mailposture-%s-%s.csv", joined, now.Format("20060102-150405"))
	}

	return filepath.Join(location, filename), nil
}

// CSV appends the reports to the file at path, creating it with a header row
// when it does not exist yet. A write failure is fatal for the invocation and
// is returned to the caller.
func CSV(reports []domainreport.DomainReport, path string) error {
	exists := fileExists(path)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to open report file %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !exists {
		if err := writer.Write(csvHeader); err != nil {
			return errors.Wrap(err, "unable to write CSV header")
		}
	}

	for _, report := range reports {
		if err := writer.Write(csvRow(report)); err != nil {
			return errors.Wrapf(err, "unable to write CSV row for %s", report.Domain)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "unable to flush CSV report")
}

func csvRow(report domainreport.DomainReport) []string {
	return []string{
		report.Domain,
		report.MX,
		report.Filter,
		report.SPFRecord,
		report.SPF,
		report.DMARCRecord,
		report.DMARC,
		strings.Join(report.DKIMSelectors, " "),
		strings.Join(report.TXTRecords, " | "),
		formatSenders(report.AuthorizedSenders),
		strings.Join(report.Errors, "; "),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
