package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// Service is the Catalogue Service contract consumed by the workflows.
// *Client implements it; tests substitute fakes.
type Service interface {
	Search(ctx context.Context, file File) (*Match, error)
	Upload(ctx context.Context, file File, info string) error
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id int64) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Catalogue Service HTTP API.
type Client struct {
	baseURL   *url.URL
	assetPath string
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:5001"
	defaultAssetPath = "/static/uploads"
	defaultUserAgent = "lostfound/0.1"
	maxResponseBytes = 4 << 20

	pathSearch = "/api/search"
	pathUpload = "/api/upload"
	pathImages = "/api/images"
)

// NewClient builds a Client for apiBase (host:port or URL). assetPath is the
// path stored assets are served under; timeout zero means no client timeout.
func NewClient(apiBase, assetPath string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	assetPath = strings.TrimSpace(assetPath)
	if assetPath == "" {
		assetPath = defaultAssetPath
	}
	return &Client{
		baseURL:   base,
		assetPath: "/" + strings.Trim(assetPath, "/"),
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Search submits an image and returns the best match. A nil Match with a nil
// error means the service found nothing.
func (c *Client) Search(ctx context.Context, file File) (*Match, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeMultipart(file, nil)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}
	var data searchData
	found, err := c.do(ctx, OpSearch, http.MethodPost, pathSearch, body, contentType, &data)
	if err != nil {
		return nil, err
	}
	if !found || data.Image == nil {
		return nil, nil
	}
	return &Match{Similarity: data.Similarity, ImageURL: data.ImageURL, Image: *data.Image}, nil
}

// Upload catalogues an image with an optional description.
func (c *Client) Upload(ctx context.Context, file File, info string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeMultipart(file, map[string]string{"info": info})
	if err != nil {
		return fmt.Errorf("encode upload request: %w", err)
	}
	_, err = c.do(ctx, OpUpload, http.MethodPost, pathUpload, body, contentType, nil)
	return err
}

// List fetches the full catalogue.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var entries []Entry
	if _, err := c.do(ctx, OpList, http.MethodGet, pathImages, nil, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("entry id required")
	}
	_, err := c.do(ctx, OpDelete, http.MethodDelete, pathImages+"/"+strconv.FormatInt(id, 10), nil, "", nil)
	return err
}

// AssetURL returns the absolute URL of an entry's stored image.
func (c *Client) AssetURL(e Entry) string {
	rel := &url.URL{Path: path.Join(c.assetPath, e.AssetName())}
	return c.baseURL.ResolveReference(rel).String()
}

// ResolveURL makes a service-relative URL (such as Match.ImageURL) absolute.
func (c *Client) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(rel).String()
}

// do executes a request and decodes the envelope's data into dest. It reports
// whether the payload carried non-null data.
func (c *Client) do(ctx context.Context, op Op, method, p string, body io.Reader, contentType string, dest any) (bool, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: p})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, transportFailure(op, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	var decodeErr error
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		decodeErr = fmt.Errorf("decode response: %w", err)
	}
	if err := settle(op, resp.StatusCode, env, decodeErr); err != nil {
		return false, err
	}
	if dest == nil || !env.hasData() {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return false, &Failure{Op: op, Status: resp.StatusCode, Message: op.Fallback(), Err: fmt.Errorf("decode data: %w", err)}
	}
	return true, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart builds the form body with the image under "file" and the
// declared media type on its part, the way a browser FormData upload does.
func encodeMultipart(file File, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	mediaType := strings.TrimSpace(file.MediaType)
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", mediaType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
