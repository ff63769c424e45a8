package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"ingest/pkg/api"

	"github.com/pkg/errors"
)

func (cli client) List(ctx context.Context) ([]api.Pipeline, error) {
	body, err := cli.do(ctx, http.MethodGet, BasePath, nil)
	if err != nil {
		return nil, err
	}
	var res []api.Pipeline
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrap(err, "cannot decode response")
	}
	return res, nil
}

func (cli client) Get(ctx context.Context, name string) (api.Pipeline, error) {
	body, err := cli.do(ctx, http.MethodGet, pipelinePath(name), nil)
	if err != nil {
		return api.Pipeline{}, err
	}
	var res api.Pipeline
	if err := json.Unmarshal(body, &res); err != nil {
		return api.Pipeline{}, errors.Wrap(err, "cannot decode response")
	}
	return res, nil
}

func (cli client) Create(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	fields := req.Fields()
	fields["name"] = name
	body, err := cli.do(ctx, http.MethodPost, BasePath, fields)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (cli client) Update(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	body, err := cli.do(ctx, http.MethodPut, pipelinePath(name), req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (cli client) Delete(ctx context.Context, names ...string) (api.DeleteResult, error) {
	if len(names) == 0 {
		return api.DeleteResult{}, errors.New("at least one pipeline name is required")
	}
	escaped := make([]string, 0, len(names))
	for _, n := range names {
		escaped = append(escaped, url.PathEscape(n))
	}
	body, err := cli.do(ctx, http.MethodDelete, BasePath+"/"+strings.Join(escaped, ","), nil)
	if err != nil {
		return api.DeleteResult{}, err
	}
	var res api.DeleteResult
	if err := json.Unmarshal(body, &res); err != nil {
		return api.DeleteResult{}, errors.Wrap(err, "cannot decode response")
	}
	return res, nil
}
