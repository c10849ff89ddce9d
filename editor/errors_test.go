package editor

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyRemoteError(t *testing.T) {
	tests := []struct {
		description string
		message     string
		expected    error
	}{
		{
			description: "revision precondition failure",
			message:     "service returned HTTP 400: Invalid value for requiredRevisionId",
			expected:    ErrStaleDocument,
		},
		{
			description: "modified document wording",
			message:     "service returned HTTP 400: The Document Has Been Modified since read",
			expected:    ErrStaleDocument,
		},
		{
			description: "quota failure",
			message:     "service returned HTTP 429: Quota exceeded",
			expected:    ErrRemoteOperationFailed,
		},
		{
			description: "document not found",
			message:     "service returned HTTP 404: Requested entity was not found",
			expected:    ErrRemoteOperationFailed,
		},
		{
			description: "permission failure",
			message:     "service returned HTTP 403: The caller does not have permission",
			expected:    ErrRemoteOperationFailed,
		},
	}

	for _, tc := range tests {
		got := ClassifyRemoteError(errors.New(tc.message))

		if !errors.Is(got, tc.expected) {
			t.Errorf("(%s) got %v, expected %v", tc.description, got, tc.expected)
		}
	}
}

func TestClassifyRemoteErrorPreservesMessage(t *testing.T) {
	underlying := errors.New("service returned HTTP 500: backend unavailable")
	got := ClassifyRemoteError(underlying)

	if !errors.Is(got, ErrRemoteOperationFailed) {
		t.Fatalf("got %v, expected ErrRemoteOperationFailed", got)
	}
	if want := "backend unavailable"; !strings.Contains(got.Error(), want) {
		t.Errorf("underlying message %q not preserved in %q", want, got.Error())
	}
}
