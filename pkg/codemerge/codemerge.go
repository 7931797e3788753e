// Package codemerge splices marker-delimited student code into a test
// harness so submissions can be run against a fixed scaffold.
package codemerge

import "strings"

// Default markers delimiting the student-editable section of a source file.
const (
	DefaultStartMarker = "// StartStudentCode"
	DefaultEndMarker   = "// EndStudentCode"
)

// Extract splits source into the text before the start marker, the code
// between the markers, and the text after the end marker. Marker lines are
// compared whitespace-trimmed and are not part of any section. When the
// markers are absent everything lands in pre.
func Extract(source, startMarker, endMarker string) (pre, code, post string) {
	var preLines, codeLines, postLines []string

	section := 0

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case section == 0 && trimmed == startMarker:
			section = 1
		case section == 1 && trimmed == endMarker:
			section = 2
		case section == 0:
			preLines = append(preLines, line)
		case section == 1:
			codeLines = append(codeLines, line)
		default:
			postLines = append(postLines, line)
		}
	}

	return strings.Join(preLines, "\n"), strings.Join(codeLines, "\n"), strings.Join(postLines, "\n")
}

// Merge replaces the student section of base with the student section of
// overlay, using the default markers.
func Merge(base, overlay string) string {
	return MergeWith(base, overlay, DefaultStartMarker, DefaultEndMarker)
}

// MergeWith is Merge with explicit markers.
func MergeWith(base, overlay, startMarker, endMarker string) string {
	pre, _, post := Extract(base, startMarker, endMarker)
	_, code, _ := Extract(overlay, startMarker, endMarker)

	return strings.Join([]string{pre, code, post}, "\n")
}
