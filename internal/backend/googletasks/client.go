// Package googletasks implements service.Remote using the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

var (
	// ErrNotFound is returned when a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous list name")

	// ErrAuth is returned when the token is missing, expired or revoked.
	ErrAuth = errors.New("token expired or revoked (run: todo login)")
)

// Client implements service.Remote using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token.json: %v", ErrAuth, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid token.json: %v", ErrAuth, err)
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// OAuthConfig reads the OAuth client credentials from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read oauth_client.json: %v", ErrAuth, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid oauth_client.json: %v", ErrAuth, err)
	}
	return oauthConfig, nil
}

// NewWithEndpoint creates a client against a custom endpoint (for testing).
func NewWithEndpoint(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}

	return service.TaskList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)

	lists, err := c.listLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}

	var matches []service.TaskList
	for _, list := range lists {
		if strings.EqualFold(strings.TrimSpace(list.Title), name) {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list %w: %s", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", ErrAmbiguous, name)
	}
}

// listLists returns all task lists in API order, with the default list's ID
// normalised to @default.
func (c *Client) listLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var result []service.TaskList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			isDefault := list.Id == defaultList.Id
			id := list.Id
			if isDefault {
				id = DefaultListID
			}
			result = append(result, service.TaskList{
				ID:        id,
				Title:     list.Title,
				IsDefault: isDefault,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTask inserts t into the list. Completed tasks are inserted completed.
func (c *Client) CreateTask(ctx context.Context, listID string, t task.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status := statusNeedsAction
	if t.Completed {
		status = statusCompleted
	}

	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{
		Title:  t.Text,
		Status: status,
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError maps API errors onto the package sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return ErrAuth
	}
	if strings.Contains(errStr, "404") {
		return ErrNotFound
	}
	return err
}
