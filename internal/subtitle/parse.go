package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDocument = errors.New("invalid WebVTT document")

// Cue is one parsed subtitle entry. Start and End are seconds with
// millisecond precision, matching what FormatTimestamp can express.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Parse reads a WebVTT document produced by Render back into cues. It
// accepts the subset Render emits: header, then numbered cue blocks
// separated by blank lines.
func Parse(document string) ([]Cue, error) {
	lines := strings.Split(strings.ReplaceAll(document, "\r\n", "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimSpace(lines[0]), header) {
		return nil, fmt.Errorf("%w: missing %s header", ErrInvalidDocument, header)
	}

	var cues []Cue
	i := 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[i]))
		if err != nil {
			return nil, fmt.Errorf("%w: cue number at line %d: %v", ErrInvalidDocument, i+1, err)
		}
		i++

		if i >= len(lines) {
			return nil, fmt.Errorf("%w: cue %d has no timing line", ErrInvalidDocument, index)
		}
		start, end, err := parseTimingLine(lines[i])
		if err != nil {
			return nil, fmt.Errorf("%w: cue %d: %v", ErrInvalidDocument, index, err)
		}
		i++

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			textLines = append(textLines, lines[i])
			i++
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(textLines, "\n"),
		})
	}

	return cues, nil
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed timing line %q", line)
	}

	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimestamp(value string) (float64, error) {
	var hours, minutes int
	var seconds float64
	if _, err := fmt.Sscanf(value, "%d:%d:%f", &hours, &minutes, &seconds); err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %v", value, err)
	}
	if minutes < 0 || minutes > 59 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("timestamp %q out of range", value)
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}
