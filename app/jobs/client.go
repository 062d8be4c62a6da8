package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/crm/pkg/http"
)

// UserAgent identifies job traffic in the server's request logs.
const UserAgent = "crm-jobs"

// Client posts GraphQL operations to the CRM's own endpoint.
type Client struct {
	URL      string
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

func NewClient(url string) *Client {
	return &Client{URL: url, Timeout: 10 * time.Second, Attempts: 3, Backoff: time.Second}
}

// GraphQLError carries the messages of a response's errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Do runs query with vars and decodes the data member into out. Transport
// failures are retried; GraphQL errors are not.
func (c *Client) Do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	body := map[string]interface{}{"query": query}
	if len(vars) > 0 {
		body["variables"] = vars
	}

	resp, err := http.Post(c.URL).
		Header("User-Agent", UserAgent).
		Body(body).
		Timeout(c.Timeout).
		Retry(c.Attempts, c.Backoff).
		WithContext(ctx).
		Send()
	if err != nil {
		return err
	}

	var env envelope
	if err := resp.JSON(&env); err != nil {
		if !resp.OK() {
			return resp.Throw()
		}
		return err
	}
	if len(env.Errors) > 0 {
		gerr := &GraphQLError{}
		for _, e := range env.Errors {
			gerr.Messages = append(gerr.Messages, e.Message)
		}
		return gerr
	}
	if err := resp.Throw(); err != nil {
		return err
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}
	return nil
}
