package editor

import (
	"fmt"
	"strings"

	"github.com/defaye/gdoc-cli/docs"
)

// Kind tags an Operation. Insert and delete are the primitives the
// service understands; replace is a logical request that lowers to an
// insert/delete pair (see Replace).
type Kind string

const (
	KindInsert  Kind = "insert"
	KindDelete  Kind = "delete"
	KindReplace Kind = "replace"
)

// CharStyle holds the character-level formatting flags an insert can
// carry. Code maps to a monospace font (Courier New).
type CharStyle struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
}

// isSet reports whether any flag is on.
func (cs CharStyle) isSet() bool {
	return cs.Bold || cs.Italic || cs.Underline || cs.Strikethrough || cs.Code
}

// fields returns the update mask naming exactly the set flags.
func (cs CharStyle) fields() string {
	var names []string
	if cs.Bold {
		names = append(names, "bold")
	}
	if cs.Italic {
		names = append(names, "italic")
	}
	if cs.Underline {
		names = append(names, "underline")
	}
	if cs.Strikethrough {
		names = append(names, "strikethrough")
	}
	if cs.Code {
		names = append(names, "weightedFontFamily")
	}
	return strings.Join(names, ",")
}

// Operation is one primitive edit against the document, addressed in
// UTF-16 code units from the document start.
//
// Insert operations use Start as the insertion point and may carry
// paragraph, bullet, and character styling for the inserted range.
// Delete operations remove the half-open range [Start, End).
type Operation struct {
	Kind           Kind
	Start          int
	End            int
	Text           string
	ParagraphStyle string
	BulletPreset   string
	CharStyle      CharStyle
}

// Insert returns an insert operation at the given index.
func Insert(at int, text string) Operation {
	return Operation{Kind: KindInsert, Start: at, Text: text}
}

// Delete returns a delete operation over [start, end).
func Delete(start, end int) Operation {
	return Operation{Kind: KindDelete, Start: start, End: end}
}

// Validate rejects malformed operations before they reach the network.
func (op Operation) Validate() error {
	if op.Start < 0 {
		return fmt.Errorf("%w: start index %d is negative", ErrInvalidRange, op.Start)
	}

	switch op.Kind {
	case KindInsert:
		return nil
	case KindDelete:
		if op.End <= op.Start {
			return fmt.Errorf("%w: end index (%d) must be greater than start index (%d)", ErrInvalidRange, op.End, op.Start)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOperationKind, op.Kind)
	}
}

// Requests lowers the operation to its wire requests.
//
// An insert emits the insertText primitive first, then one style
// request per styling concern, all covering [Start, Start+len(Text)).
func (op Operation) Requests() []docs.Request {
	if op.Kind == KindDelete {
		return []docs.Request{{
			DeleteContentRange: &docs.DeleteContentRangeRequest{
				Range: docs.Range{StartIndex: op.Start, EndIndex: op.End},
			},
		}}
	}

	requests := []docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Location: docs.Location{Index: op.Start},
			Text:     op.Text,
		},
	}}

	r := docs.Range{StartIndex: op.Start, EndIndex: op.Start + docs.UTF16Len(op.Text)}

	if op.ParagraphStyle != "" {
		requests = append(requests, docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          r,
				ParagraphStyle: docs.ParagraphStyle{NamedStyleType: op.ParagraphStyle},
				Fields:         "namedStyleType",
			},
		})
	}

	if op.BulletPreset != "" {
		requests = append(requests, docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
				Range:        r,
				BulletPreset: op.BulletPreset,
			},
		})
	}

	if op.CharStyle.isSet() {
		ts := docs.TextStyle{
			Bold:          op.CharStyle.Bold,
			Italic:        op.CharStyle.Italic,
			Underline:     op.CharStyle.Underline,
			Strikethrough: op.CharStyle.Strikethrough,
		}
		if op.CharStyle.Code {
			ts.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: "Courier New"}
		}
		requests = append(requests, docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     r,
				TextStyle: ts,
				Fields:    op.CharStyle.fields(),
			},
		})
	}

	return requests
}

// String renders the operation for logs and previews.
func (op Operation) String() string {
	switch op.Kind {
	case KindInsert:
		return fmt.Sprintf("insert %q at index %d", op.Text, op.Start)
	case KindDelete:
		return fmt.Sprintf("delete range [%d, %d)", op.Start, op.End)
	default:
		return fmt.Sprintf("unknown operation: %s", op.Kind)
	}
}
