// Package markdown extracts label names from the pipe-delimited table in
// the label standardization document.
package markdown

import "strings"

// headerPlaceholder is the first-column heading of the label table. Rows
// carrying it are duplicated header rows, not data.
const headerPlaceholder = "Label Name"

// ParseLabelTable scans content line by line and collects the label-name
// column of the first table whose header line contains headerMarker.
//
// Rows need at least four pipe-separated cells (empty | name | color |
// category | empty); the cell at index 1 is the label name. Separator
// rows ("|---...") are skipped, and so are blank lines inside the table.
// The first non-empty line that does not start with "|" ends the scan for
// good — the parser does not resume on a later table. Duplicates are kept
// in encounter order.
func ParseLabelTable(content, headerMarker string) []string {
	labels := []string{}
	inTable := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, headerMarker) {
			inTable = true
			continue
		}
		if inTable && strings.HasPrefix(line, "|---") {
			continue
		}
		if inTable && strings.HasPrefix(line, "|") {
			cells := strings.Split(line, "|")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			if len(cells) >= 4 {
				name := cells[1]
				if name != "" && name != headerPlaceholder {
					labels = append(labels, name)
				}
			}
		}
		if inTable && line != "" && !strings.HasPrefix(line, "|") {
			break
		}
	}

	return labels
}
