package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotSubmittable is returned when Submit is called on an incomplete form;
// no request is made in that case.
var ErrNotSubmittable = errors.New("form is not ready to be submitted")

// Result is the decoded answer of the contact endpoint
type Result struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// Client posts forms to the contact endpoint
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/contact",
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Submit sends the form. On success the whole form is reset; on any
// failure only the captcha token is cleared so the visitor must re-challenge.
func (c *Client) Submit(ctx context.Context, form *Form) (*Result, error) {
	if !form.IsSubmittable() {
		return nil, ErrNotSubmittable
	}

	result, err := c.post(ctx, form.Submission())
	if err != nil || !result.Success {
		form.ClearCaptcha()
		return result, err
	}

	form.Reset()
	return result, nil
}

func (c *Client) post(ctx context.Context, s Submission) (*Result, error) {
	reqBody, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach contact endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	result := &Result{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w status=%d body=%q", err, resp.StatusCode, string(body))
	}
	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		result.Success = false
	}
	return result, nil
}
