package store

// client.go is the HTTP implementation of the Store contract, speaking the
// persistence service's JSON API. Non-2xx responses become RemoteError with
// the response status and the server's error message when one is present.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taxdesk/taxdesk/internal/document"
)

// Client talks to the persistence service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. A nil httpClient
// uses a default with a 30s request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

var _ Store = (*Client)(nil)

// List fetches a full document snapshot, optionally server-filtered by type.
func (c *Client) List(ctx context.Context, typ document.Type) ([]document.Document, error) {
	endpoint := c.baseURL + "/api/documents"
	if typ != "" {
		endpoint += "?type=" + url.QueryEscape(string(typ))
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	return document.UnmarshalDocuments(body)
}

// Update applies a partial field update and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, fields map[string]string) (document.Document, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode update: %w", err)
	}

	body, err := c.do(ctx, http.MethodPatch, c.baseURL+"/api/documents/"+url.PathEscape(id),
		bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	return document.UnmarshalDocument(body)
}

// Delete removes one document. A repeat delete of an already-deleted id
// surfaces as a RemoteError with status 404.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+"/api/documents/"+url.PathEscape(id), nil, "")
	return err
}

// Upload sends a document image as multipart form data and returns the
// pending record the service created for it.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader, typ document.Type) (document.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}
	if err := mw.WriteField("type", string(typ)); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return document.UnmarshalDocument(body)
}

// Options fetches the advisory filter option lists.
func (c *Client) Options(ctx context.Context) (FilterOptions, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/api/options", nil, "")
	if err != nil {
		return FilterOptions{}, err
	}

	var opts FilterOptions
	if err := json.Unmarshal(body, &opts); err != nil {
		return FilterOptions{}, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}

// do issues one request and returns the response body, mapping non-2xx
// responses to RemoteError.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &RemoteError{Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode, Message: serverMessage(data, resp.StatusCode)}
	}
	return data, nil
}

// serverMessage extracts the error message from a JSON error body, falling
// back to the HTTP status text.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
