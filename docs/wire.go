package docs

import "unicode/utf16"

// Request is a single primitive operation in a batchUpdate call.
// Exactly one field is set per request; the service rejects requests
// with zero or multiple operations.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	DeleteContentRange     *DeleteContentRangeRequest     `json:"deleteContentRange,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
}

// Location addresses a single point in the document body.
type Location struct {
	Index int `json:"index"`
}

// Range addresses the half-open interval [StartIndex, EndIndex).
// All indices are UTF-16 code-unit offsets from the document start.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// InsertTextRequest inserts text at a location.
type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// DeleteContentRangeRequest removes the content in a range.
type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

// ParagraphStyle carries the named style of a paragraph. It appears in
// both the read path (document body) and the write path (style updates).
type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
}

// UpdateParagraphStyleRequest applies a named paragraph style to a range.
type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

// CreateParagraphBulletsRequest turns the paragraphs in a range into a
// bulleted or numbered list.
type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

// WeightedFontFamily names a font for a text run.
type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
}

// TextStyle carries character-level formatting. Only the flags named in
// the accompanying fields mask are applied by the service.
type TextStyle struct {
	Bold               bool                `json:"bold,omitempty"`
	Italic             bool                `json:"italic,omitempty"`
	Underline          bool                `json:"underline,omitempty"`
	Strikethrough      bool                `json:"strikethrough,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
}

// UpdateTextStyleRequest applies character formatting to a range.
type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

// WriteControl carries the optimistic-concurrency precondition for a
// batchUpdate. The service rejects the whole batch when the document's
// live revision no longer matches.
type WriteControl struct {
	RequiredRevisionID string `json:"requiredRevisionId"`
}

// UTF16Len returns the length of s in UTF-16 code units, the unit in
// which the service addresses every index and range. Runes outside the
// Basic Multilingual Plane count as two units, everything else as one.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
