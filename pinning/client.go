// Package pinning provides the REST client for the pin-status API.
//
// Authentication uses a per-bucket bearer token derived by the caller; this
// package only attaches it. Response bodies follow the IPFS Pinning Service
// API shape.
package pinning

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nadro-J/filebase-go/errs"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the production pin-status API endpoint.
const DefaultBaseURL = "https://api.filebase.io/v1/"

// Config holds the settings for the pin-status client.
type Config struct {
	// BaseURL is the API root. Empty means DefaultBaseURL.
	BaseURL string

	// HTTPClient issues the requests. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Client is a pin-status API client. It holds no per-call state and is safe
// for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client for the given config. cfg may be nil for defaults.
func New(cfg *Config) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   http.DefaultClient,
	}
	if cfg != nil {
		if cfg.BaseURL != "" {
			c.baseURL = cfg.BaseURL
		}
		if cfg.HTTPClient != nil {
			c.httpc = cfg.HTTPClient
		}
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

// ListPins performs a single GET against the pin listing endpoint using the
// supplied bearer token and returns the decoded result page.
func (c *Client) ListPins(ctx context.Context, token string, opts ListOptions) (*PinResults, error) {
	u := c.baseURL + "ipfs/pins"
	if q := opts.query(); len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to build pin listing request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.Wrap(errs.ErrKindTimeout, "pin listing request cancelled", err)
		}
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "pin listing request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to read pin listing response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errs.Backend(kindOf(resp.StatusCode), "pin listing rejected",
			resp.StatusCode, reasonPhrase(resp), string(body), nil)
	}

	var out PinResults
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errs.Wrap(errs.ErrKindRequestFailed, "malformed pin listing response", err)
	}
	return &out, nil
}

// reasonPhrase extracts the reason phrase from the status line, falling back
// to the canonical text for the code.
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}

// kindOf categorises a non-success HTTP status.
func kindOf(status int) errs.ErrKind {
	switch status {
	case http.StatusNotFound:
		return errs.ErrKindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.ErrKindPermissionDenied
	case http.StatusBadRequest:
		return errs.ErrKindInvalidInput
	default:
		return errs.ErrKindRequestFailed
	}
}
