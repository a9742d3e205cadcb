package manifest

import (
	"regexp"

	"github.com/sgmodkit/sgmerge/internal/domain"
)

// Manifest is the parsed rule.yml: optional header metadata plus the
// ordered list of sources to aggregate.
type Manifest struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Desc  string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Rule is a single manifest entry.
type Rule struct {
	// URL is the source descriptor: an http(s) URL or a local path.
	URL string `yaml:"url" json:"url"`

	// Drop lists exclusion tokens separated by commas and/or whitespace.
	Drop string `yaml:"drop,omitempty" json:"drop,omitempty"`
}

var dropSeparatorRegex = regexp.MustCompile(`[,\s]+`)

// DropTokens splits the Drop field into individual tokens, discarding
// empties.
func (r Rule) DropTokens() []string {
	var tokens []string
	for _, tok := range dropSeparatorRegex.Split(r.Drop, -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Usable reports whether the rule has a source to fetch.
func (r Rule) Usable() bool {
	return r.URL != ""
}

// UsableRules returns the rules that have a source, in manifest order.
// Entries without a URL are skipped; callers may report how many were
// dropped.
func (m *Manifest) UsableRules() []domain.Rule {
	rules := make([]domain.Rule, 0, len(m.Rules))
	for _, r := range m.Rules {
		if !r.Usable() {
			continue
		}
		rules = append(rules, domain.Rule{
			Source:     r.URL,
			DropTokens: r.DropTokens(),
		})
	}
	return rules
}

// Validate validates the manifest. A manifest with no usable rules is
// fatal before any fetch happens.
func (m *Manifest) Validate() error {
	if len(m.UsableRules()) == 0 {
		return domain.ErrNoRules
	}
	return nil
}
