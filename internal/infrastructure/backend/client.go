package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"agriconnect/pkg/errors"
	"agriconnect/pkg/logger"
)

// Credentials is the per-browser cookie jar replayed to the marketplace API.
type Credentials interface {
	UpstreamCookies() []*http.Cookie
	StoreUpstreamCookies(cookies []*http.Cookie)
}

type credentialsKey struct{}

// WithCredentials attaches the jar used by every call made with ctx.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

func CredentialsFrom(ctx context.Context) Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(Credentials)
	return creds
}

// File is a multipart file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

type Request struct {
	Method string
	Path   string
	// Body is sent as JSON when set.
	Body interface{}
	// File turns the request into multipart/form-data.
	File *File
}

// Client is a thin pass-through to the marketplace REST API: no retries, no
// caching, and no timeout unless one was configured.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Message string `json:"message"`
}

// Do sends req and decodes a successful JSON reply into out (which may be
// nil). Non-2xx replies become an UPSTREAM_ERROR carrying the reply's
// "message" field.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return errors.Internal("Failed to encode backend request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return errors.Internal("Failed to build backend request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	creds := CredentialsFrom(ctx)
	if creds != nil {
		for _, cookie := range creds.UpstreamCookies() {
			httpReq.AddCookie(cookie)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("backend %s %s failed: %v", req.Method, req.Path, err)
		return errors.Upstream(http.StatusBadGateway, "", err)
	}
	defer resp.Body.Close()
	logger.Debug("backend %s %s -> %d (%s)", req.Method, req.Path, resp.StatusCode, time.Since(start))

	if creds != nil {
		creds.StoreUpstreamCookies(resp.Cookies())
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("read backend reply: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return errors.Upstream(resp.StatusCode, eb.Message, fmt.Errorf("backend %s %s: status %d", req.Method, req.Path, resp.StatusCode))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode backend %s %s: %w", req.Method, req.Path, err))
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.File != nil:
		return encodeMultipart(req.File)
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

func encodeMultipart(f *File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
	if f.ContentType != "" {
		header.Set("Content-Type", f.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
