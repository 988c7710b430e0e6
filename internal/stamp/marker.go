package stamp

import "strings"

// Sentinels delimiting the block that Update rewrites.
const (
	StartMarker = "<!-- REPORT_UPDATE_START -->"
	EndMarker   = "<!-- REPORT_UPDATE_END -->"

	blockLabel = "🕒 Last report update: "
)

// Span is a byte range [Start, End) of a document.
type Span struct {
	Start, End int
}

// Locate finds the first span that opens with start and closes with the
// nearest following end, both sentinels included.
func Locate(text, start, end string) (Span, bool) {
	i := strings.Index(text, start)
	if i < 0 {
		return Span{}, false
	}
	j := strings.Index(text[i+len(start):], end)
	if j < 0 {
		return Span{}, false
	}
	return Span{Start: i, End: i + len(start) + j + len(end)}, true
}

// HasMarkers reports whether both sentinels occur anywhere in text.
func HasMarkers(text string) bool {
	return strings.Contains(text, StartMarker) && strings.Contains(text, EndMarker)
}

// ReplaceFirst swaps the first marker block in text for block and returns the
// number of blocks it replaced.
func ReplaceFirst(text, block string) (string, int) {
	span, ok := Locate(text, StartMarker, EndMarker)
	if !ok {
		return text, 0
	}
	var sb strings.Builder
	sb.Grow(len(text) - (span.End - span.Start) + len(block))
	sb.WriteString(text[:span.Start])
	sb.WriteString(block)
	sb.WriteString(text[span.End:])
	return sb.String(), 1
}

// Block renders the marker block for timestamp.
func Block(timestamp string) string {
	return StartMarker + "\n" + blockLabel + "**" + timestamp + "**\n" + EndMarker
}
