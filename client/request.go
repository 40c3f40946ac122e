package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/oarkflow/logintheme/utils"
)

// Request performs a request to the server, carrying the preferred locale
func (c *Client) Request(ctx context.Context, method, endpoint string, headers map[string]string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if c.Locale != "" {
		req.AddCookie(&http.Cookie{Name: c.LocaleCookie, Value: c.Locale})
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		re := &ResponseError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, re); err != nil || re.Code == "" {
			re.Code = http.StatusText(resp.StatusCode)
		}
		return nil, re
	}
	return resp, nil
}

func (c *Client) GET(ctx context.Context, endpoint string, headers map[string]string) (string, error) {
	resp, err := c.Request(ctx, http.MethodGet, endpoint, headers, nil)
	return utils.ParseResponse(resp, err)
}

func (c *Client) POST(ctx context.Context, endpoint string, headers map[string]string, body []byte) (string, error) {
	resp, err := c.Request(ctx, http.MethodPost, endpoint, headers, body)
	return utils.ParseResponse(resp, err)
}
