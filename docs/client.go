package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the production endpoint of the document service.
const DefaultBaseURL = "https://docs.googleapis.com/v1"

// Client talks to the document service over HTTP. It performs at most
// one read and one write per command invocation; retries are left to
// the operator.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for the production endpoint. The supplied
// http.Client must already carry authentication (see the auth package).
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: httpClient,
	}
}

// BatchUpdateRequest is the body of a batchUpdate call.
type BatchUpdateRequest struct {
	Requests     []Request     `json:"requests"`
	WriteControl *WriteControl `json:"writeControl,omitempty"`
}

// BatchUpdateResponse echoes what the service applied.
type BatchUpdateResponse struct {
	DocumentID   string            `json:"documentId,omitempty"`
	Replies      []json.RawMessage `json:"replies,omitempty"`
	WriteControl *WriteControl     `json:"writeControl,omitempty"`
}

// apiError mirrors the service's error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Fetch performs a full document read.
func (c *Client) Fetch(documentID string) (*Document, error) {
	endpoint := fmt.Sprintf("%s/documents/%s", c.BaseURL, url.PathEscape(documentID))

	resp, err := c.HTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &doc, nil
}

// FetchRevision performs a metadata-only read and returns the
// document's current revision ID.
func (c *Client) FetchRevision(documentID string) (string, error) {
	endpoint := fmt.Sprintf("%s/documents/%s?fields=revisionId", c.BaseURL, url.PathEscape(documentID))

	resp, err := c.HTTPClient.Get(endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to fetch revision ID: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return "", fmt.Errorf("failed to fetch revision ID: %w", err)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode revision ID: %w", err)
	}

	return doc.RevisionID, nil
}

// SubmitBatch submits an ordered list of primitive requests as one
// atomic write. When requiredRevisionID is non-empty it is attached as
// a writeControl precondition and the service rejects the whole batch
// if the document has changed since that revision was read.
func (c *Client) SubmitBatch(documentID string, requests []Request, requiredRevisionID string) (*BatchUpdateResponse, error) {
	body := BatchUpdateRequest{Requests: requests}
	if requiredRevisionID != "" {
		body.WriteControl = &WriteControl{RequiredRevisionID: requiredRevisionID}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/documents/%s:batchUpdate", c.BaseURL, url.PathEscape(documentID))

	resp, err := c.HTTPClient.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("batch update failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result BatchUpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode batch update response: %w", err)
	}

	return &result, nil
}

// checkResponse surfaces the service's error message for non-2xx
// responses. The message text is preserved verbatim so callers can
// classify precondition failures.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}

	var e apiError
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		return fmt.Errorf("service returned HTTP %d: %s", resp.StatusCode, e.Error.Message)
	}

	return fmt.Errorf("service returned HTTP %d: %s", resp.StatusCode, raw)
}
