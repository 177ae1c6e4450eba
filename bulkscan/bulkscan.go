// Package bulkscan runs the domain check pipeline over a file of domains,
// with checkpointing so an interrupted run can resume where it left off.
package bulkscan

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/customeros/mailposture/domainreport"
	"github.com/customeros/mailposture/internal/syntax"
	"github.com/customeros/mailposture/render"
)

const (
	batchSize      = 10
	checkpointFile = "mailposture_checkpoint.json"
)

type Checkpoint struct {
	ProcessedRows int `json:"processedRows"`
}

// Run reads domains from inputFilePath (one per line, blank lines and lines
// starting with # skipped), checks each in batches and appends the results to
// outputFilePath as CSV.
func Run(ctx context.Context, checker *domainreport.Checker, inputFilePath, outputFilePath string, workers int) error {
	checkpoint, err := loadCheckpoint()
	if err != nil {
		return errors.Wrap(err, "error loading checkpoint")
	}

	domains, err := readDomains(inputFilePath)
	if err != nil {
		return errors.Wrap(err, "error reading input file")
	}

	if checkpoint.ProcessedRows > len(domains) {
		checkpoint.ProcessedRows = 0
	}
	domains = domains[checkpoint.ProcessedRows:]

	bar := progressbar.Default(int64(len(domains)))

	for len(domains) > 0 {
		n := batchSize
		if n > len(domains) {
			n = len(domains)
		}
		batch := domains[:n]
		domains = domains[n:]

		reports := checker.CheckAll(ctx, batch, workers)

		if err := render.CSV(reports, outputFilePath); err != nil {
			return errors.Wrap(err, "error writing results")
		}

		checkpoint.ProcessedRows += n
		if err := saveCheckpoint(checkpoint); err != nil {
			return errors.Wrap(err, "error saving checkpoint")
		}

		_ = bar.Add(n)
	}

	// Completed run, next invocation starts fresh.
	_ = os.Remove(checkpointFile)

	return nil
}

func readDomains(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var domains []string
	scanner := bufio.NewScanner(bufio.NewReader(file))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// tolerate CSV input by taking the first column
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = line[:i]
		}
		if ok, domain := syntax.NormalizeDomain(line); ok {
			domains = append(domains, domain)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return domains, nil
}

func loadCheckpoint() (Checkpoint, error) {
	var checkpoint Checkpoint

	data, err := os.ReadFile(checkpointFile)
	if err != nil {
		if os.IsNotExist(err) {
			return checkpoint, nil
		}
		return checkpoint, err
	}

	err = json.Unmarshal(data, &checkpoint)
	return checkpoint, err
}

func saveCheckpoint(checkpoint Checkpoint) error {
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return err
	}
	return os.WriteFile(checkpointFile, data, 0o644)
}
