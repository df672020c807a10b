// Package jira implements the remote tracker client over Jira's REST v2 API.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/faizmokh/jejak/internal/timeline"
)

// startedFormat is the timestamp layout Jira uses for worklog start times.
const startedFormat = "2006-01-02T15:04:05.000-0700"

// ErrIssueNotFound is returned when the tracker does not know the issue key.
var ErrIssueNotFound = errors.New("issue not found")

// Client talks to one Jira server with basic auth. It implements
// timeline.Tracker. No retries and no timeout policy of its own; failures
// propagate to the caller.
type Client struct {
	baseURL string
	email   string
	token   string
	client  *http.Client
}

// NewClient builds a client for the given server base URL, authenticating
// every request with email and API token.
func NewClient(server, email, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(server, "/"),
		email:   email,
		token:   token,
		client:  &http.Client{},
	}
}

type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

type worklogResponse struct {
	StartAt    int `json:"startAt"`
	MaxResults int `json:"maxResults"`
	Total      int `json:"total"`
	Worklogs   []struct {
		Started          string `json:"started"`
		TimeSpentSeconds int    `json:"timeSpentSeconds"`
		Comment          string `json:"comment"`
	} `json:"worklogs"`
}

type addWorklogRequest struct {
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment"`
}

type projectResponse struct {
	Key string `json:"key"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// Issue fetches one issue by key.
func (c *Client) Issue(ctx context.Context, key string) (timeline.Issue, error) {
	var resp issueResponse
	path := fmt.Sprintf("/rest/api/2/issue/%s?fields=summary", url.PathEscape(key))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return timeline.Issue{}, fmt.Errorf("%w: %s", ErrIssueNotFound, key)
		}
		return timeline.Issue{}, err
	}
	return timeline.Issue{Key: resp.Key, Summary: resp.Fields.Summary}, nil
}

// Worklogs lists every worklog recorded on the issue, following Jira's
// startAt pagination until the reported total is exhausted.
func (c *Client) Worklogs(ctx context.Context, key string) ([]timeline.Worklog, error) {
	var worklogs []timeline.Worklog
	startAt := 0
	for {
		path := fmt.Sprintf("/rest/api/2/issue/%s/worklog?startAt=%s", url.PathEscape(key), strconv.Itoa(startAt))
		var page worklogResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		for _, wl := range page.Worklogs {
			started, err := time.Parse(startedFormat, wl.Started)
			if err != nil {
				return nil, fmt.Errorf("parse worklog start %q: %w", wl.Started, err)
			}
			worklogs = append(worklogs, timeline.Worklog{
				Started: started,
				Seconds: wl.TimeSpentSeconds,
				Comment: wl.Comment,
			})
		}

		startAt += len(page.Worklogs)
		if startAt >= page.Total || len(page.Worklogs) == 0 {
			return worklogs, nil
		}
	}
}

// AddWorklog creates a worklog on the issue with the given start, length in
// seconds, and comment.
func (c *Client) AddWorklog(ctx context.Context, key string, started time.Time, seconds int, comment string) error {
	body := addWorklogRequest{
		Started:          started.Format(startedFormat),
		TimeSpentSeconds: seconds,
		Comment:          comment,
	}
	path := fmt.Sprintf("/rest/api/2/issue/%s/worklog", url.PathEscape(key))
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// Projects returns the keys of every project visible to the authenticated
// user, in the order the server reports them.
func (c *Client) Projects(ctx context.Context) ([]string, error) {
	var resp []projectResponse
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/project", nil, &resp); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(resp))
	for _, project := range resp {
		keys = append(keys, project.Key)
	}
	return keys, nil
}

var errStatusNotFound = errors.New("not found")

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, errStatusNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s%s", method, path, resp.Status, apiErrorDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiErrorDetail(body io.Reader) string {
	var apiErr errorResponse
	if err := json.NewDecoder(body).Decode(&apiErr); err != nil {
		return ""
	}

	messages := apiErr.ErrorMessages
	for _, msg := range apiErr.Errors {
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return ""
	}
	return ": " + strings.Join(messages, "; ")
}
