package blocklist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/miekg/dns"
	"github.com/p4th0r/domaincheck/internal/domain"
)

// Parse processes both --blocklist (comma-separated string) and
// --blocklist-file (file path) and returns a unified list of entries.
// Either or both can be provided. With strict set, names that are not
// syntactically valid domain names are rejected.
func Parse(list string, filePath string, strict bool) ([]Entry, error) {
	var entries []Entry

	if list != "" {
		for _, raw := range strings.Split(list, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			entry, err := parseEntry(raw, strict)
			if err != nil {
				return nil, fmt.Errorf("parsing blocklist entry %q: %w", raw, err)
			}
			entry.Source = "flag"
			entries = append(entries, entry)
		}
	}

	if filePath != "" {
		fileEntries, err := parseFile(filePath, strict)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}

	return entries, nil
}

// parseFile reads a blocklist file and parses each line.
func parseFile(path string, strict bool) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening blocklist file %q: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseEntry(line, strict)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: parsing %q: %w", path, lineNum, line, err)
		}
		entry.Source = path
		entry.Line = lineNum
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading blocklist file %q: %w", path, err)
	}

	return entries, nil
}

// parseEntry normalizes a single list entry: lowercase, no trailing root dot.
func parseEntry(raw string, strict bool) (Entry, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return Entry{}, fmt.Errorf("empty entry")
	}
	if strict {
		if err := validateName(name); err != nil {
			return Entry{}, err
		}
	}
	return Entry{
		Raw:    raw,
		Domain: domain.New(name),
	}, nil
}

// NormalizeQuery applies the strict name check to a query or stream entry
// and returns it without its trailing root dot, the form list entries are
// stored in. Case is left to the Domain.
func NormalizeQuery(name string) (string, error) {
	trimmed := strings.TrimSuffix(name, ".")
	if err := validateName(strings.ToLower(trimmed)); err != nil {
		return "", err
	}
	return trimmed, nil
}

// validateName checks that a name is a plausible hostname-style domain:
// accepted by the DNS presentation-format parser, no empty labels, and only
// letters, digits, hyphens and dots.
func validateName(name string) error {
	if _, ok := dns.IsDomainName(name); !ok {
		return fmt.Errorf("invalid domain name %q", name)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("empty label in %q", name)
	}
	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '.') {
			return fmt.Errorf("invalid character %q in domain %q", c, name)
		}
	}
	return nil
}
