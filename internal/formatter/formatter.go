package formatter

import (
	"regexp"
	"strconv"
	"strings"
)

// Upstream replies arrive with inconsistent structure: some models emit
// markdown bold headings, others numbered lists, often mixed in one reply.
// Reformat normalizes both into a single sequential numbering scheme with
// indented description lines, which is what the web client renders.

var (
	markdownStep = regexp.MustCompile(`^\*\*(.+?)\*\*`)
	numberedStep = regexp.MustCompile(`^(\d+)\.\s*(.+)`)
)

// Reformat restructures free text into a numbered outline. A line starting
// with **title** or "N. content" begins a new step; the running counter is
// 1-based and sequential regardless of the numbers present in the source.
// Lines between step markers become description lines indented by three
// spaces. Lines before the first marker and blank-line separators pass
// through unchanged.
func Reformat(text string) string {
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))
	inList := false
	stepCounter := 0
	var description []string

	flush := func() {
		for _, desc := range description {
			formatted = append(formatted, "   "+desc)
		}
		description = description[:0]
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if inList {
				flush()
			}
			formatted = append(formatted, "")
			continue
		}

		var title string
		if m := markdownStep.FindStringSubmatch(line); m != nil {
			title = strings.TrimSpace(m[1])
		} else if m := numberedStep.FindStringSubmatch(line); m != nil {
			title = strings.TrimSpace(m[2])
		}

		if title != "" {
			if inList {
				flush()
			}
			inList = true
			stepCounter++
			formatted = append(formatted, strconv.Itoa(stepCounter)+". "+title)
			continue
		}

		if inList {
			description = append(description, line)
		} else {
			formatted = append(formatted, line)
		}
	}

	if inList {
		flush()
	}

	return strings.Join(formatted, "\n")
}
