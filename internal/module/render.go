package module

import "strings"

// Render serializes a merged document back to sgmodule text: header
// directives, sections in first-seen order, a single MITM hostname line,
// trailing blank lines trimmed, exactly one final newline.
func Render(doc *Document) string {
	var out []string

	if doc.Name != "" {
		out = append(out, "#!name="+doc.Name)
	}
	if doc.Desc != "" {
		out = append(out, "#!desc="+doc.Desc)
	}
	if len(out) > 0 {
		out = append(out, "")
	}

	for _, sec := range doc.SectionOrder {
		lines := doc.SectionLines[sec]
		if len(lines) == 0 {
			continue
		}
		out = append(out, "["+sec+"]")
		out = append(out, lines...)
		out = append(out, "")
	}

	if len(doc.Hosts) > 0 {
		out = append(out, "["+SpecialSection+"]")
		out = append(out, "hostname = "+AppendMarker+" "+strings.Join(doc.Hosts, ", "))
		out = append(out, "")
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n") + "\n"
}
