package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"ingest/pkg/api"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	// BasePath is the path under which pipelines are served.
	BasePath = "/api/ingest_pipelines"

	// NameParam is the path param holding a pipeline name, or comma separated names on delete
	NameParam = "name"
)

// Client is the API client that performs all operations to an ingest pipeline server
type Client interface {
	// List returns all the pipelines.
	List(ctx context.Context) ([]api.Pipeline, error)

	// Get returns the pipeline with the given name.
	Get(ctx context.Context, name string) (api.Pipeline, error)

	// Create creates a new pipeline and returns the store response.
	Create(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error)

	// Update updates an existing pipeline and returns the store response.
	Update(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error)

	// Delete deletes the given pipelines.
	Delete(ctx context.Context, names ...string) (api.DeleteResult, error)
}

// Option configures a client.
type Option func(*retryablehttp.Client)

// WithRetryMax sets the maximum number of retries on connection errors.
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) {
		c.RetryMax = n
	}
}

// NewClient creates an ingest pipeline client
func NewClient(uri string, opts ...Option) (Client, error) {
	if _, err := url.Parse(uri); err != nil {
		return nil, errors.Wrapf(err, "invalid server uri %s", uri)
	}
	httpcli := retryablehttp.NewClient()
	httpcli.Logger = nil
	httpcli.CheckRetry = checkRetry
	httpcli.ErrorHandler = retryablehttp.PassthroughErrorHandler
	for _, opt := range opts {
		opt(httpcli)
	}
	u := strings.TrimRight(uri, "/")
	return client{
		httpcli: httpcli,
		uri:     u,
	}, nil
}

type client struct {
	httpcli *retryablehttp.Client
	uri     string
}

// checkRetry retries connection errors only.
// The service passes store statuses through, so any response may come from a request already applied.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return false, nil
}

// do performs the request and returns the response body.
// Any non 2xx response is returned as an HTTPError.
func (cli client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var payload interface{}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "cannot marshal request")
		}
		payload = bytes.NewReader(b)
	}
	req, err := retryablehttp.NewRequest(method, cli.uri+path, payload)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create request")
	}
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := cli.httpcli.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot do request")
	}
	defer resp.Body.Close()

	res, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, HTTPError{
			StatusCode: resp.StatusCode,
			Body:       res,
		}
	}
	return res, nil
}

func pipelinePath(name string) string {
	return BasePath + "/" + url.PathEscape(name)
}
