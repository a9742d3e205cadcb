package domain

// Rule is one manifest entry: where to fetch a module fragment from and
// which lines of it to drop.
type Rule struct {
	// Source is a URL (http/https) or a local filesystem path.
	Source string

	// DropTokens are case-insensitive substrings; a line containing any of
	// them is excluded from this source's contribution. Never applied to
	// the MITM section.
	DropTokens []string
}

// ParsedLine is a single kept configuration line tagged with the section
// that was open when it was read.
type ParsedLine struct {
	Section string
	Text    string
}

// Fragment is the parsed form of one source: the kept non-MITM lines in
// file order, plus the hostnames found in the MITM section.
type Fragment struct {
	Lines     []ParsedLine
	Hostnames []string
}

// SourceFailure records a source that could not be fetched. The run
// continues past these; they are reported in the summary.
type SourceFailure struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Summary describes one aggregation run.
type Summary struct {
	TotalRules int             `json:"total_rules"`
	Fetched    int             `json:"fetched"`
	Lines      int             `json:"lines"`
	Hostnames  int             `json:"hostnames"`
	Failures   []SourceFailure `json:"failures,omitempty"`
}

// Failed returns the number of sources that could not be fetched.
func (s *Summary) Failed() int {
	return len(s.Failures)
}
