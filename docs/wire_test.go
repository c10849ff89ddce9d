package docs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		description string
		text        string
		expected    int
	}{
		{description: "empty string", text: "", expected: 0},
		{description: "ascii", text: "abc", expected: 3},
		{description: "supplementary plane character", text: "𝔸", expected: 2},
		{description: "mixed ascii and supplementary", text: "a𝔸b", expected: 4},
		{description: "combining mark counts as one unit", text: "e\u0301", expected: 2},
		{description: "bmp non-ascii", text: "héllo", expected: 5},
		{description: "emoji", text: "🎉", expected: 2},
		{description: "newlines count", text: "a\nb\n", expected: 4},
	}

	for _, tc := range tests {
		got := UTF16Len(tc.text)

		if !cmp.Equal(got, tc.expected) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}
