package editor

import (
	"errors"
	"testing"

	"github.com/defaye/gdoc-cli/docs"
	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		description string
		op          Operation
		expected    error
	}{
		{description: "valid insert", op: Insert(0, "hi"), expected: nil},
		{description: "valid delete", op: Delete(5, 10), expected: nil},
		{description: "empty delete range", op: Delete(10, 10), expected: ErrInvalidRange},
		{description: "inverted delete range", op: Delete(10, 5), expected: ErrInvalidRange},
		{description: "negative insert index", op: Insert(-1, "hi"), expected: ErrInvalidRange},
		{description: "unknown kind", op: Operation{Kind: "merge"}, expected: ErrInvalidOperationKind},
	}

	for _, tc := range tests {
		err := tc.op.Validate()

		if tc.expected == nil {
			if err != nil {
				t.Errorf("(%s) unexpected error: %v", tc.description, err)
			}
			continue
		}
		if !errors.Is(err, tc.expected) {
			t.Errorf("(%s) got %v, expected %v", tc.description, err, tc.expected)
		}
	}
}

func TestInsertRequests(t *testing.T) {
	op := Operation{
		Kind:      KindInsert,
		Start:     100,
		Text:      "Bold text",
		CharStyle: CharStyle{Bold: true},
	}

	got := op.Requests()

	expected := []docs.Request{
		{InsertText: &docs.InsertTextRequest{
			Location: docs.Location{Index: 100},
			Text:     "Bold text",
		}},
		{UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     docs.Range{StartIndex: 100, EndIndex: 109},
			TextStyle: docs.TextStyle{Bold: true},
			Fields:    "bold",
		}},
	}

	if !cmp.Equal(got, expected) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(got, expected))
	}
}

func TestInsertRequestsWithoutStyles(t *testing.T) {
	// An unstyled insert is exactly one primitive, even when the text
	// ends in a newline.
	got := Insert(10, "A paragraph.\n").Requests()

	expected := []docs.Request{
		{InsertText: &docs.InsertTextRequest{
			Location: docs.Location{Index: 10},
			Text:     "A paragraph.\n",
		}},
	}

	if !cmp.Equal(got, expected) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(got, expected))
	}
}

func TestInsertRequestsParagraphStyle(t *testing.T) {
	op := Operation{
		Kind:           KindInsert,
		Start:          0,
		Text:           "Heading\n",
		ParagraphStyle: "HEADING_2",
	}

	got := op.Requests()
	if len(got) != 2 || got[1].UpdateParagraphStyle == nil {
		t.Fatalf("expected insert + paragraph style, got %+v", got)
	}
	if style := got[1].UpdateParagraphStyle.ParagraphStyle.NamedStyleType; style != "HEADING_2" {
		t.Errorf("got style %q, expected HEADING_2", style)
	}
	if !cmp.Equal(got[1].UpdateParagraphStyle.Range, docs.Range{StartIndex: 0, EndIndex: 8}) {
		t.Errorf("unexpected style range: %+v", got[1].UpdateParagraphStyle.Range)
	}
}

func TestInsertRequestsStyleRangeUsesUTF16Units(t *testing.T) {
	// One supplementary-plane character occupies two units.
	op := Operation{
		Kind:      KindInsert,
		Start:     5,
		Text:      "𝔸b",
		CharStyle: CharStyle{Italic: true},
	}

	got := op.Requests()
	if len(got) != 2 || got[1].UpdateTextStyle == nil {
		t.Fatalf("expected insert + text style, got %+v", got)
	}
	if !cmp.Equal(got[1].UpdateTextStyle.Range, docs.Range{StartIndex: 5, EndIndex: 8}) {
		t.Errorf("unexpected style range: %+v", got[1].UpdateTextStyle.Range)
	}
}

func TestInsertRequestsCodeStyle(t *testing.T) {
	op := Operation{
		Kind:      KindInsert,
		Start:     0,
		Text:      "x := 1",
		CharStyle: CharStyle{Bold: true, Code: true},
	}

	got := op.Requests()
	if len(got) != 2 || got[1].UpdateTextStyle == nil {
		t.Fatalf("expected insert + text style, got %+v", got)
	}

	ts := got[1].UpdateTextStyle
	if ts.Fields != "bold,weightedFontFamily" {
		t.Errorf("unexpected fields mask: %q", ts.Fields)
	}
	if ts.TextStyle.WeightedFontFamily == nil || ts.TextStyle.WeightedFontFamily.FontFamily != "Courier New" {
		t.Errorf("expected Courier New, got %+v", ts.TextStyle.WeightedFontFamily)
	}
}

func TestInsertRequestsBulletPreset(t *testing.T) {
	op := Operation{
		Kind:         KindInsert,
		Start:        1,
		Text:         "Item 1\nItem 2\n",
		BulletPreset: "BULLET_DISC_CIRCLE_SQUARE",
	}

	got := op.Requests()

	if len(got) != 2 {
		t.Fatalf("expected insert + bullets, got %d requests", len(got))
	}

	bullets := got[1].CreateParagraphBullets
	if bullets == nil {
		t.Fatal("expected a createParagraphBullets request")
	}
	if bullets.BulletPreset != "BULLET_DISC_CIRCLE_SQUARE" {
		t.Errorf("unexpected preset: %q", bullets.BulletPreset)
	}
	if !cmp.Equal(bullets.Range, docs.Range{StartIndex: 1, EndIndex: 15}) {
		t.Errorf("unexpected bullet range: %+v", bullets.Range)
	}
}

func TestDeleteRequests(t *testing.T) {
	got := Delete(50, 60).Requests()

	expected := []docs.Request{
		{DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: docs.Range{StartIndex: 50, EndIndex: 60},
		}},
	}

	if !cmp.Equal(got, expected) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(got, expected))
	}
}
