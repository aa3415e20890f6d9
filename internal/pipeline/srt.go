package pipeline

import (
	"regexp"
	"strings"
)

// Segment is one time-aligned transcript unit from the transcriber.
type Segment struct {
	Start string
	End   string
	Text  string
}

var reSrtTime = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[,.]\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// parseSRT splits SRT subtitle content into segments. Blocks are
// separated by blank lines: a sequence number, a timing line, then one
// or more text lines.
func parseSRT(content string) []Segment {
	var segments []Segment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		var seg Segment
		textStart := -1
		for i, line := range lines {
			if m := reSrtTime.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				seg.Start = m[1]
				seg.End = m[2]
				textStart = i + 1
				break
			}
		}
		if textStart < 0 || textStart >= len(lines) {
			continue
		}

		seg.Text = strings.TrimSpace(strings.Join(lines[textStart:], " "))
		if seg.Text == "" {
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}
