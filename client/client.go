package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/models"
	"github.com/oarkflow/logintheme/utils"
)

// New create a client of the theme server at serverURL
func New(serverURL string) *Client {
	return &Client{
		serverURL:    serverURL,
		LocaleCookie: "selectedLanguage",
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Client renders pages through a running theme server
type Client struct {
	serverURL string

	// HTTPClient performs the requests
	HTTPClient *http.Client
	// LocaleCookie name of the cookie the server reads the preferred locale from
	LocaleCookie string
	// Locale preferred locale sent with every request, none when empty
	Locale string
}

// ResponseError an error the server answered with
type ResponseError struct {
	StatusCode  int
	Code        string `json:"error"`
	Detail      string `json:"error_detail"`
	Description string `json:"error_description"`
}

func (e *ResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
}

// Unwrap the known error the code names, so errors.Is works across the wire
func (e *ResponseError) Unwrap() error {
	for known := range errors.Descriptions {
		if known.Error() == e.Code {
			return known
		}
	}
	return nil
}

// Render the page of rc
func (c *Client) Render(ctx context.Context, rc *models.RenderContext) (string, error) {
	if rc == nil {
		return "", errors.ErrMissingContext
	}
	body, err := json.Marshal(rc)
	if err != nil {
		return "", err
	}
	return c.POST(ctx, "/render", map[string]string{"Content-Type": "application/json"}, body)
}

// Preview render the stored fixture of the page
func (c *Client) Preview(ctx context.Context, pageID logintheme.PageID, fixture string) (string, error) {
	endpoint := "/preview/" + url.PathEscape(pageID.String())
	if fixture != "" {
		endpoint += "?" + url.Values{"fixture": {fixture}}.Encode()
	}
	return c.GET(ctx, endpoint, nil)
}

// Fixtures the fixture names stored for the page
func (c *Client) Fixtures(ctx context.Context, pageID logintheme.PageID) ([]string, error) {
	body, err := c.GET(ctx, "/preview/"+url.PathEscape(pageID.String())+"/fixtures", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Fixtures []string `json:"fixtures"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, err
	}
	return out.Fixtures, nil
}

// ServerURL the server the client talks to
func (c *Client) ServerURL() string {
	return c.serverURL
}

func (c *Client) endpoint(path string) string {
	if utils.HasScheme(path) {
		return path
	}
	return utils.AppendURL(c.serverURL, path)
}
