package render

import (
	"html/template"
	"os"

	"github.com/pkg/errors"

	"github.com/customeros/mailposture/domainreport"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>DNS Report for {{.Domain}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.5em; }
h2 { font-size: 1.1em; margin-top: 1.5em; }
table { border-collapse: collapse; margin-top: 0.5em; }
th, td { border: 1px solid #999; padding: 6px 12px; text-align: left; }
th { background-color: #eee; }
pre { background-color: #f6f6f6; padding: 1em; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>DNS Report for {{.Domain}}</h1>

<h2>MX Records</h2>
<table>
<tr><th>Primary</th><th>Mail Filter</th></tr>
<tr><td>{{.MX}}</td><td>{{.Filter}}</td></tr>
</table>
{{if .MXRecords}}
<table>
<tr><th>All Exchangers</th></tr>
{{range .MXRecords}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{end}}

<h2>SPF</h2>
<table>
<tr><th>Status</th><th>Record</th></tr>
<tr><td>{{.SPF}}</td><td>{{.SPFRecord}}</td></tr>
</table>

<h2>DMARC</h2>
<table>
<tr><th>Status</th><th>Record</th></tr>
<tr><td>{{.DMARC}}</td><td>{{.DMARCRecord}}</td></tr>
</table>

<h2>DKIM</h2>
{{if .DKIMSelectors}}
<table>
<tr><th>Selectors Found</th></tr>
{{range .DKIMSelectors}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{else}}
<p>No DKIM selectors found among the common selectors probed.</p>
{{end}}

<h2>TXT Records</h2>
{{if .TXTRecords}}
<table>
<tr><th>Record</th></tr>
{{range .TXTRecords}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{else}}
<p>No TXT records found.</p>
{{end}}

{{if .Recommendations}}
<h2>Recommendations</h2>
<pre>{{.Recommendations}}</pre>
{{end}}
</body>
</html>
`

var htmlReport = template.Must(template.New("report").Parse(htmlTemplate))

// HTMLPath returns the default output path for a domain's HTML report.
func HTMLPath(domain string) string {
	return domain + "-DnsReport.html"
}

// HTML writes the report as an HTML document to path.
func HTML(report domainreport.DomainReport, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create report file %s", path)
	}
	defer file.Close()

	if err := htmlReport.Execute(file, report); err != nil {
		return errors.Wrap(err, "unable to render HTML report")
	}
	return nil
}
