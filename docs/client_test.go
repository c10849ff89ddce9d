package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeService stands in for the document service.
func fakeService(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
}

func TestFetch(t *testing.T) {
	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/doc-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Document{
			DocumentID: "doc-1",
			Title:      "Notes",
			RevisionID: "rev-7",
			Body: Body{Content: []StructuralElement{
				{StartIndex: 1, EndIndex: 6, Paragraph: &Paragraph{
					Elements: []ParagraphElement{{TextRun: &TextRun{Content: "Hello"}}},
				}},
			}},
		})
	})

	doc, err := client.Fetch("doc-1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if doc.DocumentID != "doc-1" || doc.RevisionID != "rev-7" {
		t.Errorf("unexpected document metadata: %+v", doc)
	}
	if len(doc.Body.Content) != 1 || doc.Body.Content[0].Paragraph == nil {
		t.Errorf("unexpected body: %+v", doc.Body)
	}
}

func TestFetchRevision(t *testing.T) {
	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fields"); got != "revisionId" {
			t.Errorf("expected a metadata-only read, got fields=%q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"revisionId": "rev-42"})
	})

	revision, err := client.FetchRevision("doc-1")
	if err != nil {
		t.Fatalf("FetchRevision failed: %v", err)
	}
	if revision != "rev-42" {
		t.Errorf("got revision %q, expected %q", revision, "rev-42")
	}
}

func TestSubmitBatch(t *testing.T) {
	var received BatchUpdateRequest

	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/documents/doc-1:batchUpdate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(BatchUpdateResponse{DocumentID: "doc-1"})
	})

	requests := []Request{
		{InsertText: &InsertTextRequest{Location: Location{Index: 5}, Text: "hi"}},
	}

	result, err := client.SubmitBatch("doc-1", requests, "rev-42")
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	if result.DocumentID != "doc-1" {
		t.Errorf("unexpected response: %+v", result)
	}

	expected := BatchUpdateRequest{
		Requests:     requests,
		WriteControl: &WriteControl{RequiredRevisionID: "rev-42"},
	}
	if !cmp.Equal(received, expected) {
		t.Errorf("request body got != expected, diff: %v\n", cmp.Diff(received, expected))
	}
}

func TestSubmitBatchOmitsWriteControlWithoutRevision(t *testing.T) {
	var received map[string]json.RawMessage

	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(BatchUpdateResponse{})
	})

	_, err := client.SubmitBatch("doc-1", []Request{
		{DeleteContentRange: &DeleteContentRangeRequest{Range: Range{StartIndex: 1, EndIndex: 2}}},
	}, "")
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}

	if _, ok := received["writeControl"]; ok {
		t.Error("writeControl should be omitted when no revision is required")
	}
}

func TestSubmitBatchSurfacesServiceError(t *testing.T) {
	client := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    400,
				"message": "Invalid requests[0].deleteContentRange: document has been modified",
				"status":  "FAILED_PRECONDITION",
			},
		})
	})

	_, err := client.SubmitBatch("doc-1", []Request{
		{DeleteContentRange: &DeleteContentRangeRequest{Range: Range{StartIndex: 1, EndIndex: 2}}},
	}, "rev-1")
	if err == nil {
		t.Fatal("expected an error")
	}

	// The service message must survive verbatim so staleness
	// classification can inspect it.
	if !strings.Contains(err.Error(), "document has been modified") {
		t.Errorf("service message not preserved in: %v", err)
	}
}
