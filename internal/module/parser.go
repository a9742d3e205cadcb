package module

import (
	"regexp"
	"strings"

	"github.com/sgmodkit/sgmerge/internal/domain"
)

const (
	// SpecialSection is the TLS-interception section, merged by hostname.
	SpecialSection = "MITM"

	// AppendMarker is stripped from hostname values on input and
	// re-emitted on output.
	AppendMarker = "%APPEND%"
)

var (
	sectionHeaderRegex = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)
	mitmHostnameRegex  = regexp.MustCompile(`(?i)^\s*hostname\s*=\s*(.+?)\s*$`)
)

var commentPrefixes = []string{"#", "//", ";"}

// Parse tokenizes one source's text into section-tagged lines and MITM
// hostnames, applying the source's drop tokens to non-MITM lines.
func Parse(text string, dropTokens []string) domain.Fragment {
	var frag domain.Fragment

	lowered := make([]string, len(dropTokens))
	for i, tok := range dropTokens {
		lowered[i] = strings.ToLower(tok)
	}

	currentSection := ""
	inSection := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimPrefix(strings.TrimRight(raw, "\r\n"), "\ufeff")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || isComment(trimmed) {
			continue
		}

		if m := sectionHeaderRegex.FindStringSubmatch(line); m != nil {
			currentSection = strings.TrimSpace(m[1])
			inSection = true
			continue
		}

		// Content before the first section header is metadata, not rules.
		if !inSection {
			continue
		}

		if strings.EqualFold(currentSection, SpecialSection) {
			frag.Hostnames = append(frag.Hostnames, parseHostnames(line)...)
			continue
		}

		if matchesAny(line, lowered) {
			continue
		}

		frag.Lines = append(frag.Lines, domain.ParsedLine{
			Section: currentSection,
			Text:    line,
		})
	}

	return frag
}

func isComment(trimmed string) bool {
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// parseHostnames extracts hostnames from a MITM line. Only hostname
// assignments count; everything else in the section is ignored.
func parseHostnames(line string) []string {
	m := mitmHostnameRegex.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	rest := strings.TrimSpace(strings.ReplaceAll(m[1], AppendMarker, ""))

	var hosts []string
	for _, host := range strings.Split(rest, ",") {
		host = strings.TrimSpace(host)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

func matchesAny(line string, loweredTokens []string) bool {
	if len(loweredTokens) == 0 {
		return false
	}
	lowerLine := strings.ToLower(line)
	for _, tok := range loweredTokens {
		if strings.Contains(lowerLine, tok) {
			return true
		}
	}
	return false
}
