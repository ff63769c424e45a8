package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"ingest/pkg/metrics"

	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const (
	// ElasticsearchType Store type Elasticsearch
	ElasticsearchType Type = "elasticsearch"

	pipelinePath = "/_ingest/pipeline"
	licensePath  = "/_license"
)

// errorStatuses lists the statuses for which the response is handed back instead of being decoded
// by the client, so the store error body is kept verbatim.
var errorStatuses = func() []int {
	var codes []int
	for c := http.StatusBadRequest; c <= 599; c++ {
		codes = append(codes, c)
	}
	return codes
}()

func init() {
	f := func(c interface{}) (Store, error) {
		asESConf, isESConf := c.(*ElasticsearchConfig)
		if !isESConf {
			return nil, errors.Errorf("given configuration struct is not type %T", ElasticsearchConfig{})
		}
		return NewElasticsearchStore(*asESConf)
	}
	register(ElasticsearchType, f, func() interface{} {
		return &ElasticsearchConfig{URLs: []string{elastic.DefaultURL}}
	})
}

// ElasticsearchConfig is configuration for the elasticsearch store implementation
type ElasticsearchConfig struct {
	URLs        []string `mapstructure:"urls" env:"STORE_ELASTICSEARCH_URLS" envSeparator:","`
	Username    string   `mapstructure:"username" env:"STORE_ELASTICSEARCH_USERNAME"`
	Password    string   `mapstructure:"password" env:"STORE_ELASTICSEARCH_PASSWORD"`
	Sniff       bool     `mapstructure:"sniff" env:"STORE_ELASTICSEARCH_SNIFF"`
	Healthcheck bool     `mapstructure:"healthcheck" env:"STORE_ELASTICSEARCH_HEALTHCHECK"`
}

type elasticsearch struct {
	client *elastic.Client
}

// NewElasticsearchStore returns a Store implementation based on Elasticsearch.
// Requests are never retried.
func NewElasticsearchStore(conf ElasticsearchConfig, options ...elastic.ClientOptionFunc) (Store, error) {
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(conf.URLs...),
		elastic.SetSniff(conf.Sniff),
		elastic.SetHealthcheck(conf.Healthcheck),
		elastic.SetRetrier(elastic.NewStopRetrier()),
	}
	if conf.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(conf.Username, conf.Password))
	}
	cli, err := elastic.NewClient(append(opts, options...)...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create elasticsearch client for %v", conf.URLs)
	}
	return &elasticsearch{client: cli}, nil
}

func (s *elasticsearch) GetPipeline(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := s.perform(ctx, "get_pipeline", http.MethodGet, pipelinePath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var pipelines map[string]json.RawMessage
	if err := json.Unmarshal(body, &pipelines); err != nil {
		return nil, errors.Wrapf(err, "cannot decode pipeline %s", id)
	}
	p, exists := pipelines[id]
	if !exists {
		return nil, NotFoundError("pipeline [" + id + "]")
	}
	return p, nil
}

func (s *elasticsearch) PutPipeline(ctx context.Context, id string, body interface{}) (json.RawMessage, error) {
	return s.perform(ctx, "put_pipeline", http.MethodPut, pipelinePath+"/"+url.PathEscape(id), body)
}

func (s *elasticsearch) DeletePipeline(ctx context.Context, id string) (json.RawMessage, error) {
	return s.perform(ctx, "delete_pipeline", http.MethodDelete, pipelinePath+"/"+url.PathEscape(id), nil)
}

func (s *elasticsearch) ListPipelines(ctx context.Context) (map[string]json.RawMessage, error) {
	body, err := s.perform(ctx, "list_pipelines", http.MethodGet, pipelinePath, nil)
	if err != nil {
		return nil, err
	}
	pipelines := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &pipelines); err != nil {
		return nil, errors.Wrap(err, "cannot decode pipelines")
	}
	return pipelines, nil
}

func (s *elasticsearch) License(ctx context.Context) (License, error) {
	body, err := s.perform(ctx, "license", http.MethodGet, licensePath, nil)
	if err != nil {
		return License{}, err
	}
	var res struct {
		License License `json:"license"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return License{}, errors.Wrap(err, "cannot decode license")
	}
	return res.License, nil
}

// perform issues a single request and returns the raw response body.
// Errors reported by elasticsearch are converted to StoreError, everything else is returned wrapped.
func (s *elasticsearch) perform(ctx context.Context, call, method, path string, body interface{}) (json.RawMessage, error) {
	start := time.Now()
	res, err := s.client.PerformRequest(ctx, elastic.PerformRequestOptions{
		Method:       method,
		Path:         path,
		Body:         body,
		IgnoreErrors: errorStatuses,
	})
	metrics.ObserveStoreCall(call, time.Since(start))
	if err != nil {
		return nil, classify(err, method, path)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, &StoreError{Status: res.StatusCode, Body: errorPayload(res.Body)}
	}
	return res.Body, nil
}

// errorPayload keeps a JSON body as is, anything else is kept as text.
func errorPayload(body json.RawMessage) interface{} {
	if len(body) > 0 && json.Valid(body) {
		return body
	}
	return string(body)
}

func classify(err error, method, path string) error {
	var esErr *elastic.Error
	if errors.As(err, &esErr) {
		status := esErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return &StoreError{Status: status, Body: esErr}
	}
	return errors.Wrapf(err, "cannot do request %s %s", method, path)
}
