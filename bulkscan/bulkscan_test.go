package bulkscan

import (
	"context"
	"encoding/csv"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailposture/domainreport"
	"github.com/customeros/mailposture/internal/dns"
	"github.com/customeros/mailposture/internal/logger"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return dir
}

func TestRun(t *testing.T) {
	dir := chdirTemp(t)

	input := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(input, []byte("# comment\na.com\nb.com,ignored column\n\nnot a domain\n"), 0o644))

	resolver := dns.MockResolver{
		MX: map[string][]*net.MX{
			"a.com.": {{Host: "mx.secureserver.net.", Pref: 10}},
		},
		TXT: map[string][]string{
			"a.com.":        {"v=spf1 include:secureserver.net -all"},
			"_dmarc.a.com.": {"v=DMARC1; p=quarantine"},
		},
	}
	checker := domainreport.NewChecker(resolver, logger.NewNop())

	output := filepath.Join(dir, "out.csv")
	require.NoError(t, Run(context.Background(), checker, input, output, 2))

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// header + a.com + b.com; the invalid line is skipped
	require.Len(t, rows, 3)
	assert.Equal(t, "a.com", rows[1][0])
	assert.Equal(t, domainreport.FilterGoDaddy, rows[1][2])
	assert.Equal(t, "b.com", rows[2][0])
	assert.Equal(t, domainreport.FilterNone, rows[2][2])

	// completed runs leave no checkpoint behind
	_, err = os.Stat(checkpointFile)
	assert.True(t, os.IsNotExist(err))
}

func TestReadDomains(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "domains.csv")
	require.NoError(t, os.WriteFile(input, []byte("A.COM,acme\nhttps://www.b.com/contact\n"), 0o644))

	domains, err := readDomains(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com", "b.com"}, domains)
}

func TestCheckpointRoundTrip(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, saveCheckpoint(Checkpoint{ProcessedRows: 7}))
	checkpoint, err := loadCheckpoint()
	require.NoError(t, err)
	assert.Equal(t, 7, checkpoint.ProcessedRows)
}
