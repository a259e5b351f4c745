package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/estatemanner/hookrelay/pkg/domain/interfaces"
	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
)

type dispatcher struct {
	httpClient *http.Client
	baseURL    string
	token      string
	owner      string
	repo       string
	userAgent  string
}

// Option is a functional option for Dispatcher configuration
type Option func(*dispatcher)

// WithBaseURL overrides the GitHub API base URL
func WithBaseURL(baseURL string) Option {
	return func(d *dispatcher) {
		if baseURL != "" {
			d.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client used for dispatch requests
func WithHTTPClient(client *http.Client) Option {
	return func(d *dispatcher) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// NewDispatcher creates a Dispatcher that emits repository dispatch events
// to the given owner/repo. The token is checked at dispatch time, not here,
// so that a misconfigured server still starts and reports the problem per
// request.
func NewDispatcher(token, owner, repo string, opts ...Option) interfaces.Dispatcher {
	d := &dispatcher{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		token:      token,
		owner:      owner,
		repo:       repo,
		userAgent:  "hookrelay/" + types.Version,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// CreateDispatch sends a single repository dispatch request to GitHub
func (d *dispatcher) CreateDispatch(ctx context.Context, event *model.DispatchEvent) error {
	if d.token == "" {
		return goerr.Wrap(types.ErrMissingCredential, "cannot dispatch without a github token")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal dispatch event")
	}

	url := fmt.Sprintf("%s/repos/%s/%s/dispatches", d.baseURL, d.owner, d.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create dispatch request", goerr.V("url", url))
	}

	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrUpstreamUnreachable, "failed to call github dispatch api",
			goerr.V("url", url),
			goerr.V("cause", err.Error()),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			respBody = []byte(fmt.Sprintf("(failed to read response body: %v)", readErr))
		}
		return goerr.Wrap(types.ErrUpstreamRejected, "dispatch request was rejected",
			goerr.V("status_code", resp.StatusCode),
			goerr.V("response_body", string(respBody)),
		)
	}

	return nil
}
