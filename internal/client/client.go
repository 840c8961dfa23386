// Package client is the HTTP client for the archive API, consumed by the
// terminal browser. It implements browse.Fetcher
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skyvault/internal/browse"
	"skyvault/internal/core/availability"
	"skyvault/internal/core/datekey"
	perr "skyvault/internal/platform/errors"
)

// Client talks to a skyvault API server. Zero value is not usable, use New
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient gets a
// default with a 30s timeout (downloads stream, so the timeout covers
// headers, not the body)
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ImageCounts fetches the per-night availability list
func (c *Client) ImageCounts(ctx context.Context) ([]availability.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/get_image_counts", nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "fetch image counts")
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []availability.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "decode image counts")
	}
	for _, e := range entries {
		if !datekey.Valid(e.Date) {
			return nil, perr.MalformedDateKeyf("image_date %q", e.Date)
		}
	}
	return entries, nil
}

// EstimateSize posts the form and returns the estimated size in MB.
// Failures are returned to the caller, never swallowed
func (c *Client) EstimateSize(ctx context.Context, f browse.FormState) (float64, error) {
	resp, err := c.postForm(ctx, "/calculate_size", browse.EstimateRequest(f))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return 0, err
	}

	var out struct {
		TotalSizeMB float64 `json:"total_size_mb"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnknown, "decode size estimate")
	}
	return out.TotalSizeMB, nil
}

// Download posts the form and streams the resulting archive into w
func (c *Client) Download(ctx context.Context, f browse.FormState, w io.Writer) (int64, error) {
	resp, err := c.postForm(ctx, "/download", browse.DownloadRequest(f))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, perr.Wrap(err, perr.ErrorCodeUnavailable, "stream download")
	}
	return n, nil
}

// DownloadByDate streams the archive for a single night into w
func (c *Client) DownloadByDate(ctx context.Context, k datekey.Key, w io.Writer) (int64, error) {
	if !datekey.Valid(k) {
		return 0, perr.MalformedDateKeyf("date %q", k)
	}
	u := c.base + "/download_by_date?" + browse.DateDownloadRequest(k).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnknown, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "fetch night archive")
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, perr.Wrap(err, perr.ErrorCodeUnavailable, "stream night archive")
	}
	return n, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "post %s", path)
	}
	return resp, nil
}

// checkStatus maps a non-2xx response to an error, preferring the API's
// wire error payload when present
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var env struct {
		Code  perr.ErrorCode `json:"code"`
		Error string         `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil && env.Error != "" {
		return perr.New(env.Code, env.Error)
	}
	return perr.Newf(perr.ErrorCodeUnavailable, "%s: %s", resp.Request.URL.Path, statusText(resp.StatusCode))
}

func statusText(code int) string {
	if t := http.StatusText(code); t != "" {
		return fmt.Sprintf("%d %s", code, t)
	}
	return fmt.Sprintf("status %d", code)
}
