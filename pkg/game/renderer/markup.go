package renderer

import (
	"regexp"
	"strings"
)

// Segment is a run of text drawn in one style.
type Segment struct {
	Text  string
	Style TextStyle
}

var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

var markupStyles = map[string]TextStyle{
	"TITLE":   StyleTitle,
	"ROOM":    StylePrompt,
	"ACTION":  StyleAction,
	"HINT":    StyleHint,
	"GOOD":    StyleGood,
	"DENIED":  StyleDenied,
	"LOCKED":  StyleLocked,
	"CODE":    StyleCode,
	"SUBTLE":  StyleSubtle,
	"CURRENT": StyleCurrent,
}

// ParseMarkup splits msg into styled segments. FUNCTION{content} picks the
// style, GT{KEY} is replaced by its translation, and unknown functions are
// left as plain text.
func ParseMarkup(msg string) []Segment {
	var segments []Segment
	last := 0
	for _, m := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		if m[0] > last {
			segments = append(segments, Segment{Text: msg[last:m[0]]})
		}
		function := msg[m[2]:m[3]]
		content := msg[m[4]:m[5]]

		switch style, ok := markupStyles[function]; {
		case function == "GT":
			segments = append(segments, Segment{Text: dynamicGet(content)})
		case ok:
			segments = append(segments, Segment{Text: content, Style: style})
		default:
			segments = append(segments, Segment{Text: msg[m[0]:m[1]]})
		}
		last = m[1]
	}
	if last < len(msg) || len(segments) == 0 {
		segments = append(segments, Segment{Text: msg[last:]})
	}
	return segments
}

// PlainText strips markup from msg.
func PlainText(msg string) string {
	var b strings.Builder
	for _, s := range ParseMarkup(msg) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Mark wraps s in a markup function, dropping braces that would end it early.
func Mark(function, s string) string {
	return function + "{" + strings.ReplaceAll(s, "}", ")") + "}"
}
