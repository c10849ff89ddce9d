// Package markdown lowers a restricted markdown dialect into document
// service requests: one flat text insertion plus paragraph-style,
// list-formatting, and character-style requests expressed in the
// post-insertion index space.
package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/defaye/gdoc-cli/docs"
)

// Presets applied to markdown list items.
const (
	BulletPreset   = "BULLET_DISC_CIRCLE_SQUARE"
	NumberedPreset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

var orderedItemPattern = regexp.MustCompile(`^\d+\.\s(.*)$`)

// lineKind classifies a line by its leading marker.
type lineKind int

const (
	linePlain lineKind = iota
	lineHeading
	lineBullet
	lineNumbered
)

// inlineKind classifies an inline marker pair.
type inlineKind int

const (
	inlineBold inlineKind = iota
	inlineItalic
	inlineBoldItalic
	inlineCode
)

// span is one inline style range, in UTF-16 code units relative to the
// start of the cleaned line it was found in.
type span struct {
	start int
	end   int
	kind  inlineKind
}

// Lower converts markdown into the request list for one atomic batch
// rooted at index, and returns the UTF-16 length of the inserted text.
//
// Processing is line-oriented: the paragraph marker is stripped first
// (headings before bullets, ordered items by the numeric-dot pattern),
// then the remainder is scanned once left to right for inline markers.
// Inline offsets are accumulated across lines using the running UTF-16
// length of the already-cleaned lines, so every style range is correct
// in the final document's coordinate space. The batch is pure
// insertion, so no sequencing pass is needed.
func Lower(text string, index int) ([]docs.Request, int) {
	lines := strings.Split(text, "\n")
	// A trailing newline produces an empty final segment, not an extra
	// empty paragraph.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	type styledLine struct {
		kind       lineKind
		namedStyle string
		start      int
		end        int
		spans      []span
	}

	var (
		fullText strings.Builder
		styled   []styledLine
		running  = index
	)

	for _, line := range lines {
		kind, namedStyle, rest := classifyLine(line)
		cleaned, spans := scanInline(rest)
		cleaned += "\n"

		length := docs.UTF16Len(cleaned)
		styled = append(styled, styledLine{
			kind:       kind,
			namedStyle: namedStyle,
			start:      running,
			end:        running + length,
			spans:      spans,
		})
		fullText.WriteString(cleaned)
		running += length
	}

	requests := []docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Location: docs.Location{Index: index},
			Text:     fullText.String(),
		},
	}}

	// Paragraph styles, in document order.
	for _, sl := range styled {
		if sl.kind == lineHeading {
			requests = append(requests, docs.Request{
				UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
					Range:          docs.Range{StartIndex: sl.start, EndIndex: sl.end},
					ParagraphStyle: docs.ParagraphStyle{NamedStyleType: sl.namedStyle},
					Fields:         "namedStyleType",
				},
			})
		}
	}

	// List formatting. Adjacent items of the same preset coalesce into
	// one request spanning the whole run.
	var bulletRanges, numberedRanges []docs.Range
	for _, sl := range styled {
		switch sl.kind {
		case lineBullet:
			bulletRanges = appendRange(bulletRanges, docs.Range{StartIndex: sl.start, EndIndex: sl.end})
		case lineNumbered:
			numberedRanges = appendRange(numberedRanges, docs.Range{StartIndex: sl.start, EndIndex: sl.end})
		}
	}
	for _, r := range bulletRanges {
		requests = append(requests, docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{Range: r, BulletPreset: BulletPreset},
		})
	}
	for _, r := range numberedRanges {
		requests = append(requests, docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{Range: r, BulletPreset: NumberedPreset},
		})
	}

	// Inline character styles last.
	for _, sl := range styled {
		for _, sp := range sl.spans {
			requests = append(requests, textStyleRequest(sl.start+sp.start, sl.start+sp.end, sp.kind))
		}
	}

	return requests, running - index
}

// classifyLine strips the paragraph-level marker and reports the line's
// kind. Heading markers are checked before bullets; ordered items match
// the numeric-dot pattern.
func classifyLine(line string) (lineKind, string, string) {
	switch {
	case strings.HasPrefix(line, "### "):
		return lineHeading, "HEADING_3", line[4:]
	case strings.HasPrefix(line, "## "):
		return lineHeading, "HEADING_2", line[3:]
	case strings.HasPrefix(line, "# "):
		return lineHeading, "HEADING_1", line[2:]
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return lineBullet, "", line[2:]
	}

	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		return lineNumbered, "", m[1]
	}

	return linePlain, "", line
}

// scanInline removes inline markers from a line and records the styled
// spans in UTF-16 offsets of the cleaned text.
//
// Markers are matched greedily, longest first (*** before ** before *;
// backticks independently), and a pair counts only with a non-empty
// interior; otherwise the marker characters are literal text.
func scanInline(line string) (string, []span) {
	var (
		cleaned strings.Builder
		spans   []span
		out     int // UTF-16 length of cleaned so far
		i       int // byte offset into line
	)

	appendLiteral := func(s string) {
		cleaned.WriteString(s)
		out += docs.UTF16Len(s)
	}

	for i < len(line) {
		rest := line[i:]

		matched := false
		for _, m := range [...]struct {
			marker string
			kind   inlineKind
		}{
			{"***", inlineBoldItalic},
			{"**", inlineBold},
			{"*", inlineItalic},
			{"`", inlineCode},
		} {
			if !strings.HasPrefix(rest, m.marker) {
				continue
			}
			interior := rest[len(m.marker):]
			closing := strings.Index(interior, m.marker)
			if closing <= 0 {
				// No closing marker, or an empty interior: not a pair.
				continue
			}

			body := interior[:closing]
			start := out
			appendLiteral(body)
			spans = append(spans, span{start: start, end: out, kind: m.kind})
			i += len(m.marker) + closing + len(m.marker)
			matched = true
			break
		}

		if !matched {
			_, size := utf8.DecodeRuneInString(rest)
			appendLiteral(rest[:size])
			i += size
		}
	}

	return cleaned.String(), spans
}

// appendRange extends the last range when the new one is contiguous
// with it, otherwise starts a new run.
func appendRange(ranges []docs.Range, r docs.Range) []docs.Range {
	if n := len(ranges); n > 0 && ranges[n-1].EndIndex == r.StartIndex {
		ranges[n-1].EndIndex = r.EndIndex
		return ranges
	}
	return append(ranges, r)
}

func textStyleRequest(start, end int, kind inlineKind) docs.Request {
	var (
		ts     docs.TextStyle
		fields string
	)

	switch kind {
	case inlineBold:
		ts.Bold = true
		fields = "bold"
	case inlineItalic:
		ts.Italic = true
		fields = "italic"
	case inlineBoldItalic:
		ts.Bold = true
		ts.Italic = true
		fields = "bold,italic"
	case inlineCode:
		ts.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: "Courier New"}
		fields = "weightedFontFamily"
	}

	return docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: ts,
			Fields:    fields,
		},
	}
}
