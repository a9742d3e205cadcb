package module

import (
	"testing"

	"github.com/sgmodkit/sgmerge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SectionsAndLines(t *testing.T) {
	text := "[Rule]\nDOMAIN,a.com,REJECT\nDOMAIN,b.com,REJECT\n[URL Rewrite]\n^https://ads reject\n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 3)
	assert.Equal(t, domain.ParsedLine{Section: "Rule", Text: "DOMAIN,a.com,REJECT"}, frag.Lines[0])
	assert.Equal(t, domain.ParsedLine{Section: "URL Rewrite", Text: "^https://ads reject"}, frag.Lines[2])
	assert.Empty(t, frag.Hostnames)
}

func TestParse_SkipsBlankAndCommentLines(t *testing.T) {
	text := "[Rule]\n\n   \n# hash comment\n// slash comment\n; semicolon comment\nkept\n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 1)
	assert.Equal(t, "kept", frag.Lines[0].Text)
}

func TestParse_DiscardsLinesBeforeFirstSection(t *testing.T) {
	text := "orphan line\nanother\n[Rule]\nkept\n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 1)
	assert.Equal(t, "kept", frag.Lines[0].Text)
}

func TestParse_StripsBOMAndCarriageReturns(t *testing.T) {
	text := "\ufeff[Rule]\r\nline1\r\nline2\r\n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 2)
	assert.Equal(t, "line1", frag.Lines[0].Text)
	assert.Equal(t, "line2", frag.Lines[1].Text)
}

func TestParse_SectionNameTrimmedCaseSensitive(t *testing.T) {
	text := "[ Script ]\nline-a\n[script]\nline-b\n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 2)
	assert.Equal(t, "Script", frag.Lines[0].Section)
	assert.Equal(t, "script", frag.Lines[1].Section)
}

func TestParse_PreservesLineBodyFormatting(t *testing.T) {
	text := "[Rule]\n  indented , spaced  \n"

	frag := Parse(text, nil)

	require.Len(t, frag.Lines, 1)
	assert.Equal(t, "  indented , spaced  ", frag.Lines[0].Text)
}

func TestParse_DropTokensCaseInsensitive(t *testing.T) {
	text := "[Rule]\nDOMAIN,Ads-Block.example.com,REJECT\nDOMAIN,clean.example.com,REJECT\n"

	frag := Parse(text, []string{"ads"})

	require.Len(t, frag.Lines, 1)
	assert.Equal(t, "DOMAIN,clean.example.com,REJECT", frag.Lines[0].Text)
}

func TestParse_MITMHostnames(t *testing.T) {
	text := "[MITM]\nhostname = %APPEND% a.com, b.com ,, c.com\n"

	frag := Parse(text, nil)

	assert.Empty(t, frag.Lines)
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, frag.Hostnames)
}

func TestParse_MITMCaseInsensitiveSectionAndKey(t *testing.T) {
	text := "[mitm]\nHOSTNAME = x.com\n"

	frag := Parse(text, nil)

	assert.Equal(t, []string{"x.com"}, frag.Hostnames)
}

func TestParse_MITMIgnoresNonHostnameLines(t *testing.T) {
	text := "[MITM]\nskip-server-cert-verify = true\nh2 = true\nhostname = a.com\n"

	frag := Parse(text, nil)

	assert.Empty(t, frag.Lines)
	assert.Equal(t, []string{"a.com"}, frag.Hostnames)
}

func TestParse_DropTokensNeverApplyInMITM(t *testing.T) {
	text := "[MITM]\nhostname = ads.example.com\n"

	frag := Parse(text, []string{"ads"})

	assert.Equal(t, []string{"ads.example.com"}, frag.Hostnames)
}

func TestParse_HostnameWithoutAppendMarker(t *testing.T) {
	text := "[MITM]\nhostname = a.com, b.com\n"

	frag := Parse(text, nil)

	assert.Equal(t, []string{"a.com", "b.com"}, frag.Hostnames)
}

func TestParse_EmptyInput(t *testing.T) {
	frag := Parse("", nil)
	assert.Empty(t, frag.Lines)
	assert.Empty(t, frag.Hostnames)
}
