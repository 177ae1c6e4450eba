package domainreport

import (
	"embed"
	"log"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/customeros/mailposture/internal/syntax"
)

//go:embed known_senders.toml
var knownSendersFile embed.FS

// KnownSender describes a service commonly found in SPF include: targets.
type KnownSender struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// KnownSenders maps the sender's root domain to its description.
type KnownSenders map[string]KnownSender

// AuthorizedSenders buckets the services a domain's SPF record authorizes
// to send on its behalf.
type AuthorizedSenders struct {
	Enterprise []string
	Hosting    []string
	Security   []string
	Webmail    []string
	Other      []string
}

var includeRegex = regexp.MustCompile(`include:([^\s]+)`)

func knownSenders() KnownSenders {
	content, err := knownSendersFile.ReadFile("known_senders.toml")
	if err != nil {
		log.Fatalf("Error reading known senders file: %v", err)
	}

	var senders KnownSenders
	if err := toml.Unmarshal(content, &senders); err != nil {
		log.Fatalf("Error decoding known senders file: %v", err)
	}
	return senders
}

// classifySenders resolves every include: target in the SPF record against
// the known-senders table and buckets the matches by category.
func classifySenders(spfRecord string, known KnownSenders) AuthorizedSenders {
	senders := AuthorizedSenders{}
	if spfRecord == "" {
		return senders
	}

	categoryMap := map[string]*[]string{
		"enterprise": &senders.Enterprise,
		"hosting":    &senders.Hosting,
		"security":   &senders.Security,
		"webmail":    &senders.Webmail,
		"other":      &senders.Other,
	}

	includes := includeRegex.FindAllStringSubmatch(spfRecord, -1)
	for _, include := range includes {
		if len(include) < 2 {
			continue
		}
		includeDomain, err := syntax.ExtractRootDomain(include[1])
		if err != nil {
			continue
		}
		sender, exists := known[includeDomain]
		if !exists {
			continue
		}
		if bucket, ok := categoryMap[sender.Category]; ok {
			appendIfNotExists(bucket, sender.Name)
		}
	}

	return senders
}

func appendIfNotExists(slice *[]string, s string) {
	for _, v := range *slice {
		if v == s {
			return
		}
	}
	*slice = append(*slice, s)
}
