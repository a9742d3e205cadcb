package module

import "github.com/sgmodkit/sgmerge/internal/domain"

// MergeState accumulates the fold over all sources. It is owned by the
// single aggregation pass and mutated strictly in manifest order; nothing
// else touches it.
type MergeState struct {
	sectionOrder []string
	sectionLines map[string][]string
	lineSeen     map[string]map[string]struct{}
	hosts        []string
	hostSeen     map[string]struct{}
}

// NewMergeState creates an empty merge state.
func NewMergeState() *MergeState {
	return &MergeState{
		sectionLines: make(map[string][]string),
		lineSeen:     make(map[string]map[string]struct{}),
		hostSeen:     make(map[string]struct{}),
	}
}

// Fold applies one parsed source to the state. Sections and lines keep
// first-seen order; a line repeats only across distinct sections, and
// hostnames are globally unique (case-sensitive).
func (s *MergeState) Fold(frag domain.Fragment) {
	for _, pl := range frag.Lines {
		seen, ok := s.lineSeen[pl.Section]
		if !ok {
			seen = make(map[string]struct{})
			s.lineSeen[pl.Section] = seen
			s.sectionLines[pl.Section] = nil
			s.sectionOrder = append(s.sectionOrder, pl.Section)
		}
		if _, dup := seen[pl.Text]; dup {
			continue
		}
		seen[pl.Text] = struct{}{}
		s.sectionLines[pl.Section] = append(s.sectionLines[pl.Section], pl.Text)
	}

	for _, host := range frag.Hostnames {
		if _, dup := s.hostSeen[host]; dup {
			continue
		}
		s.hostSeen[host] = struct{}{}
		s.hosts = append(s.hosts, host)
	}
}

// SectionOrder returns the section names in first-seen order.
func (s *MergeState) SectionOrder() []string {
	return append([]string(nil), s.sectionOrder...)
}

// SectionLines returns the distinct lines of one section in first-seen
// order.
func (s *MergeState) SectionLines(section string) []string {
	return append([]string(nil), s.sectionLines[section]...)
}

// Hosts returns the distinct MITM hostnames in first-seen order.
func (s *MergeState) Hosts() []string {
	return append([]string(nil), s.hosts...)
}

// LineCount returns the total number of retained non-MITM lines.
func (s *MergeState) LineCount() int {
	total := 0
	for _, lines := range s.sectionLines {
		total += len(lines)
	}
	return total
}

// HostCount returns the number of retained hostnames.
func (s *MergeState) HostCount() int {
	return len(s.hosts)
}

// Document freezes the state into an immutable merged document.
func (s *MergeState) Document(name, desc string) *Document {
	sections := make(map[string][]string, len(s.sectionLines))
	for sec := range s.sectionLines {
		sections[sec] = append([]string(nil), s.sectionLines[sec]...)
	}

	return &Document{
		Name:         name,
		Desc:         desc,
		SectionOrder: s.SectionOrder(),
		SectionLines: sections,
		Hosts:        s.Hosts(),
	}
}

// Document is the final merged module, the serializer's sole input.
type Document struct {
	Name         string
	Desc         string
	SectionOrder []string
	SectionLines map[string][]string
	Hosts        []string
}
