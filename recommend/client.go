// Package recommend asks a hosted text-generation API for free-text
// remediation advice based on a domain's collected DNS records.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/customeros/mailposture/domainreport"
)

// Config holds the endpoint settings. ApiKey must come from the environment
// or a secret store; it is never persisted or logged.
type Config struct {
	Url     string
	ApiKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	config Config
	http   *http.Client
}

func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommendations summarizes the report, sends it to the configured endpoint
// and returns the trimmed response text. Callers treat a failure as
// non-fatal: the report is still rendered without a recommendations section.
func (c *Client) Recommendations(ctx context.Context, report domainreport.DomainReport) (string, error) {
	if c.config.ApiKey == "" {
		return "", errors.New("no API key configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(report)},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Url, bytes.NewBuffer(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.ApiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal response")
	}
	if len(response.Choices) == 0 {
		return "", errors.New("response contained no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// buildPrompt embeds the collected records into a fixed instruction asking
// for remediation advice, two vendor upsell angles and a cold-call narrative.
func buildPrompt(report domainreport.DomainReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The following DNS records were collected for the domain %s.\n\n", report.Domain)
	fmt.Fprintf(&b, "Primary MX: %s\n", report.MX)
	if len(report.MXRecords) > 0 {
		fmt.Fprintf(&b, "All MX records: %s\n", strings.Join(report.MXRecords, ", "))
	}
	fmt.Fprintf(&b, "Mail filter classification: %s\n", report.Filter)
	fmt.Fprintf(&b, "SPF status: %s\n", report.SPF)
	if report.SPFRecord != "" {
		fmt.Fprintf(&b, "SPF record: %s\n", report.SPFRecord)
	}
	fmt.Fprintf(&b, "DMARC status: %s\n", report.DMARC)
	if report.DMARCRecord != "" {
		fmt.Fprintf(&b, "DMARC record: %s\n", report.DMARCRecord)
	}
	if len(report.DKIMSelectors) > 0 {
		fmt.Fprintf(&b, "DKIM selectors found: %s\n", strings.Join(report.DKIMSelectors, ", "))
	}
	if len(report.TXTRecords) > 0 {
		fmt.Fprintf(&b, "TXT records:\n")
		for _, txt := range report.TXTRecords {
			fmt.Fprintf(&b, "  %s\n", txt)
		}
	}

	b.WriteString("\nBased on these records, provide:\n")
	b.WriteString("1. Security recommendations to improve this domain's email authentication posture.\n")
	b.WriteString("2. Two vendor-specific upsell angles relevant to the gaps you identified.\n")
	b.WriteString("3. A short cold-call narrative a sales engineer could open with.\n")

	return b.String()
}
