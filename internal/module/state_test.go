package module

import (
	"testing"

	"github.com/sgmodkit/sgmerge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(section, text string) domain.ParsedLine {
	return domain.ParsedLine{Section: section, Text: text}
}

func TestMergeState_DeduplicatesWithinSection(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("Proxy", "line1"),
		line("Proxy", "line2"),
	}})
	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("Proxy", "line2"),
		line("Proxy", "line3"),
	}})

	assert.Equal(t, []string{"line1", "line2", "line3"}, s.SectionLines("Proxy"))
}

func TestMergeState_DuplicateRetainedAtFirstPosition(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("Rule", "a"),
		line("Rule", "b"),
		line("Rule", "a"),
		line("Rule", "c"),
	}})

	assert.Equal(t, []string{"a", "b", "c"}, s.SectionLines("Rule"))
}

func TestMergeState_SameTextIndependentAcrossSections(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("Rule", "shared"),
		line("Script", "shared"),
	}})

	assert.Equal(t, []string{"shared"}, s.SectionLines("Rule"))
	assert.Equal(t, []string{"shared"}, s.SectionLines("Script"))
	assert.Equal(t, 2, s.LineCount())
}

func TestMergeState_SectionOrderFirstSeen(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("Rule", "r1"),
		line("Script", "s1"),
	}})
	s.Fold(domain.Fragment{Lines: []domain.ParsedLine{
		line("URL Rewrite", "u1"),
		line("Rule", "r2"),
	}})

	assert.Equal(t, []string{"Rule", "Script", "URL Rewrite"}, s.SectionOrder())
}

func TestMergeState_HostnamesGloballyUnique(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Hostnames: []string{"a.com", "b.com"}})
	s.Fold(domain.Fragment{Hostnames: []string{"b.com", "c.com"}})

	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, s.Hosts())
	assert.Equal(t, 3, s.HostCount())
}

func TestMergeState_HostnameDedupIsCaseSensitive(t *testing.T) {
	s := NewMergeState()

	s.Fold(domain.Fragment{Hostnames: []string{"A.com", "a.com"}})

	assert.Equal(t, []string{"A.com", "a.com"}, s.Hosts())
}

func TestMergeState_InvariantOrderMatchesKeys(t *testing.T) {
	s := NewMergeState()

	s.Fold(Parse("[Rule]\nr1\n[Script]\ns1\n[MITM]\nhostname = a.com\n", nil))
	s.Fold(Parse("[Map Local]\nm1\n", nil))

	order := s.SectionOrder()
	assert.Equal(t, []string{"Rule", "Script", "Map Local"}, order)
	for _, sec := range order {
		assert.NotEmpty(t, s.SectionLines(sec))
	}
	assert.NotContains(t, order, SpecialSection)
}

func TestMergeState_Document_IsACopy(t *testing.T) {
	s := NewMergeState()
	s.Fold(domain.Fragment{
		Lines:     []domain.ParsedLine{line("Rule", "r1")},
		Hostnames: []string{"a.com"},
	})

	doc := s.Document("Name", "Desc")
	doc.SectionLines["Rule"][0] = "mutated"
	doc.Hosts[0] = "mutated"

	assert.Equal(t, []string{"r1"}, s.SectionLines("Rule"))
	assert.Equal(t, []string{"a.com"}, s.Hosts())

	require.Equal(t, "Name", doc.Name)
	require.Equal(t, "Desc", doc.Desc)
}

func TestMergeState_FoldDeterministicUnderFixedOrder(t *testing.T) {
	fold := func() *MergeState {
		s := NewMergeState()
		s.Fold(Parse("[B]\nb1\n[A]\na1\n", nil))
		s.Fold(Parse("[A]\na2\n[C]\nc1\n", nil))
		return s
	}

	first := fold()
	second := fold()

	assert.Equal(t, first.SectionOrder(), second.SectionOrder())
	for _, sec := range first.SectionOrder() {
		assert.Equal(t, first.SectionLines(sec), second.SectionLines(sec))
	}
}
